package testutil

import (
	"fmt"
	"sort"
	"strings"
)

// Translator renders "key" or "key{data}" so tests can assert which message
// was chosen without depending on the catalog.
type Translator struct{}

func (Translator) T(_ string, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	return key + fmtData(data)
}

func fmtData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
