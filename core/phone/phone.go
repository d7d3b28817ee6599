// Package phone normalizes Korean phone numbers into one of two canonical
// hyphenated forms: 02-XXX(X)-XXXX for Seoul numbers and
// 0XX-XXX(X)-XXXX for every other area or mobile prefix.
package phone

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

var canonicalPattern = regexp.MustCompile(`^(?:02-\d{3,4}-\d{4}|0\d{2}-\d{3,4}-\d{4})$`)

// Normalize returns the canonical form of raw, or raw trimmed when the digit
// count does not fit a known layout. It is idempotent.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	digits := Digits(trimmed)

	switch {
	case strings.HasPrefix(digits, "02"):
		switch len(digits) {
		case 9:
			return digits[:2] + "-" + digits[2:5] + "-" + digits[5:]
		case 10:
			return digits[:2] + "-" + digits[2:6] + "-" + digits[6:]
		}
	case len(digits) >= 3 && digits[0] == '0':
		switch len(digits) {
		case 10:
			return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
		case 11:
			return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
		}
	}
	return trimmed
}

// Digits strips everything but digits from raw and rewrites a leading
// country code 82 into the domestic trunk prefix 0. A redundant trunk zero
// after the country code ("+82 010 …") is dropped.
func Digits(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if strings.HasPrefix(digits, "82") {
		digits = "0" + strings.TrimPrefix(digits[2:], "0")
	}
	return digits
}

// IsCanonical reports whether s is already in one of the canonical forms.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}
