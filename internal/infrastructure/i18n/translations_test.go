package i18n

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	logger, hook := test.NewNullLogger()
	tr := NewTranslator("en", logger)

	t.Run("default locale", func(t *testing.T) {
		assert.Equal(t, "Event not found!", tr.T("", "error.event_not_found", nil))
	})

	t.Run("requested locale", func(t *testing.T) {
		assert.Equal(t, "Événement introuvable !", tr.T("fr", "error.event_not_found", nil))
	})

	t.Run("template data", func(t *testing.T) {
		got := tr.T("en", "error.not_registered", map[string]any{"Prefix": "!"})
		assert.Equal(t, "You are not registered yet! Use `!register` first.", got)
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		assert.Equal(t, "Event deleted!", tr.T("de", "event.deleted", nil))
	})

	t.Run("unknown key renders the key", func(t *testing.T) {
		hook.Reset()
		assert.Equal(t, "no.such.key", tr.T("en", "no.such.key", nil))
		if assert.NotNil(t, hook.LastEntry()) {
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		}
	})

	t.Run("empty key", func(t *testing.T) {
		assert.Empty(t, tr.T("en", "", nil))
	})
}

func TestNewTranslatorInvalidDefaultLocale(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tr := NewTranslator("???", logger)
	assert.Equal(t, "No events currently!", tr.T("", "event.none", nil))
}

func TestLocalesHaveSameKeys(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tr := NewTranslator("en", logger)
	keys := []string{
		"error.event_exists", "error.event_not_found", "error.empty_event_name",
		"error.invalid_lookup", "error.not_registered", "error.not_event_channel",
		"error.guild_only", "error.missing_role", "error.generic",
		"command.usage", "command.invalid_event",
		"register.done", "register.already", "register.check_yes", "register.check_no",
		"event.deleted", "event.none", "event.list_title",
		"status.participants", "status.join_label", "status.join_hint",
		"reaction.not_registered", "help.title", "help.admin",
	}
	for _, key := range keys {
		assert.NotEqual(t, key, tr.T("en", key, nil), "en %s", key)
		assert.NotEqual(t, key, tr.T("fr", key, nil), "fr %s", key)
	}
}
