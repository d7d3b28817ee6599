package utils

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxStringLength is the default maximum length, in runes, for
	// truncated strings.
	DefaultMaxStringLength = 500
)

// JSONToString serialises object to JSON. When indent is true the output is
// pretty-printed with two-space indentation. On marshalling failure it
// returns a JSON-formatted error string, so the result is always safe to use
// in log output.
func JSONToString(object any, indent ...bool) string {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return "{\"error\": \"failed to marshal to JSON: " + err.Error() + "\"}"
	}
	return string(encoded)
}

// TruncateString shortens s to at most maxLen runes, appending a suffix that
// records the original rune count. Multi-byte text (Hangul) is never cut in
// the middle of a character. If maxLen is zero or negative,
// [DefaultMaxStringLength] is used instead.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	total := utf8.RuneCountInString(s)
	if total <= maxLen {
		return s
	}

	cut, n := 0, 0
	for i := range s {
		if n == maxLen {
			cut = i
			break
		}
		n++
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], total)
}
