// Package amount converts Korean reward fragments such as "1만5천원",
// "2.5만" or "15,000P" into integer amounts.
package amount

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// unitPattern matches one (number)(magnitude) pair. Longer compound units are
// listed first so "5천만" is read as 5×10^7 and not 5×10^3.
var unitPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(천만|백만|십만|억|만|천|백|십)`)

var unitValues = map[string]float64{
	"억":  1e8,
	"천만": 1e7,
	"백만": 1e6,
	"십만": 1e5,
	"만":  1e4,
	"천":  1e3,
	"백":  1e2,
	"십":  1e1,
}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// maxAmount is the first float64 that no longer fits in an int64.
const maxAmount = float64(math.MaxInt64)

// rangeSeparator matches the separators accepted between the two sides of a
// quoted range, including full-width and typographic variants.
var rangeSeparator = regexp.MustCompile(`[~～〜\-–—]`)

// Parse converts a single fragment into an amount, rounded to the nearest
// integer. The second return value is false when the fragment has no numeric
// content or the amount does not fit in an int64.
//
// Fragments with Korean magnitude suffixes are summed per (number)(unit)
// pair; anything else is stripped down to digits and decimal points.
func Parse(fragment string) (int64, bool) {
	value, ok := parseFloat(fragment)
	if !ok {
		return 0, false
	}
	return int64(math.Round(value)), true
}

// ParseRange parses a fragment that may quote a range ("1~2만",
// "5,000-10,000P") and returns the larger side. Fragments without a range
// separator between two numeric sides are parsed with [Parse].
func ParseRange(fragment string) (int64, bool) {
	left, right, found := splitRange(fragment)
	if !found {
		return Parse(fragment)
	}

	lv, lok := parseFloat(left)
	rv, rok := parseFloat(right)
	switch {
	case lok && rok:
		return int64(math.Round(math.Max(lv, rv))), true
	case lok:
		return int64(math.Round(lv)), true
	case rok:
		return int64(math.Round(rv)), true
	default:
		return 0, false
	}
}

// splitRange cuts fragment at the first separator that has a digit on both
// sides. A leading dash ("-5000") is not a range.
func splitRange(fragment string) (string, string, bool) {
	for _, loc := range rangeSeparator.FindAllStringIndex(fragment, -1) {
		left, right := fragment[:loc[0]], fragment[loc[1]:]
		if hasDigit(left) && hasDigit(right) {
			return left, right, true
		}
	}
	return "", "", false
}

func parseFloat(fragment string) (float64, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, fragment)
	if compact == "" {
		return 0, false
	}

	if matches := unitPattern.FindAllStringSubmatch(compact, -1); len(matches) > 0 {
		total := 0.0
		for _, m := range matches {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			total += n * unitValues[m[2]]
		}
		return total, InRange(total)
	}

	digits := nonNumeric.ReplaceAllString(compact, "")
	if digits == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return value, InRange(value)
}

// InRange reports whether value rounds to a non-negative int64.
func InRange(value float64) bool {
	return !math.IsNaN(value) && value >= 0 && math.Round(value) < maxAmount
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}
