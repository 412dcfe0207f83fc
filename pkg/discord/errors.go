package discord

import (
	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

// TranslateDomainError maps a domain error code to a user-facing message.
// Unknown codes get the generic message.
func TranslateDomainError(t output.T, locale, code string, data map[string]any) string {
	if code == "" {
		return t.T(locale, "error.generic", data)
	}
	key := "error." + code
	msg := t.T(locale, key, data)
	if msg == key {
		return t.T(locale, "error.generic", data)
	}
	return msg
}

// DomainErrorMessage is a convenience helper that extracts the domain error code
// and immediately resolves it to a user-facing message. It returns "" when err
// carries no domain error.
func DomainErrorMessage(t output.T, locale string, err error, data map[string]any) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return TranslateDomainError(t, locale, code, data)
	}
	return ""
}
