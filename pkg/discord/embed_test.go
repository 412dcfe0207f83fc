package discord

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"eventbot/internal/ports/output"
)

func TestToMessageEmbed(t *testing.T) {
	embed := ToMessageEmbed(output.Embed{
		Title:       "**Finals**",
		Description: "Bring snacks",
		Fields:      []output.EmbedField{{Name: "Participants (1)", Value: "Alice"}},
	})
	assert.Equal(t, "**Finals**", embed.Title)
	assert.Equal(t, "Bring snacks", embed.Description)
	assert.Equal(t, embedColor, embed.Color)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Participants (1)", embed.Fields[0].Name)
	assert.Equal(t, "Alice", embed.Fields[0].Value)
}

func TestToMessageEmbedLimits(t *testing.T) {
	fields := make([]output.EmbedField, 30)
	for i := range fields {
		fields[i] = output.EmbedField{Name: "n", Value: strings.Repeat("é", 2000)}
	}
	embed := ToMessageEmbed(output.Embed{Title: strings.Repeat("x", 300), Fields: fields})

	assert.Equal(t, maxTitleLen, utf8.RuneCountInString(embed.Title))
	assert.Len(t, embed.Fields, maxFields)
	assert.Equal(t, maxFieldValueLen, utf8.RuneCountInString(embed.Fields[0].Value))
	assert.True(t, strings.HasSuffix(embed.Fields[0].Value, "…"))
}

func TestProperty_TruncateBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		n := rapid.IntRange(1, 64).Draw(t, "n")

		got := truncate(s, n)
		if utf8.RuneCountInString(got) > n {
			t.Fatalf("truncate(%q, %d) = %q exceeds limit", s, n, got)
		}
		if utf8.RuneCountInString(s) <= n && got != s {
			t.Fatalf("short string changed: %q -> %q", s, got)
		}
	})
}

func TestListEmbedAndMention(t *testing.T) {
	embed := ListEmbed("**Events**", []string{"A", "B"})
	assert.Equal(t, "**Events**", embed.Title)
	assert.Equal(t, "A\nB", embed.Description)
	assert.Equal(t, "<@42>", Mention("42"))
}
