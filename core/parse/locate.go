package parse

import (
	"regexp"
	"strings"
)

// fencePattern matches a ```json fenced block. An unterminated fence (a
// response cut off mid-block) runs to the end of the text.
var fencePattern = regexp.MustCompile("(?is)```[ \\t]*json[ \\t]*\\r?\\n?(.*?)(?:```|$)")

// Locate returns the JSON-like span of a model response: the body of the
// first ```json fenced block when one exists, otherwise the first top-level
// brace-balanced {...} object. Braces inside string literals are ignored.
//
// When an object is opened but never closed the tail from the opening brace
// is returned so that repair can complete it. ok is false when the text
// contains no object at all.
func Locate(content string) (span string, ok bool) {
	if m := fencePattern.FindStringSubmatch(content); m != nil {
		if body := strings.TrimSpace(m[1]); body != "" {
			return body, true
		}
	}
	return firstObject(content)
}

func firstObject(content string) (string, bool) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	var quote byte
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	return strings.TrimSpace(content[start:]), true
}
