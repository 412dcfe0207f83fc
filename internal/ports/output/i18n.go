package output

// T renders user-facing messages. Unknown keys render as the key itself.
type T interface {
	// T renders the message identified by key for locale, filling template
	// placeholders from data (may be nil).
	T(locale, key string, data map[string]any) string
}
