// Package normalize cleans and bounds the list-shaped and free-text fields of
// a campaign record: keywords, the guideline digest, optional text fields and
// period dates.
//
// All text is brought to Unicode NFC first, so Hangul pasted in decomposed
// (jamo) form compares equal to its precomposed spelling.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/leofalp/campaignlens/core/campaign"
)

const (
	// MaxKeywords bounds the keyword list.
	MaxKeywords = 50

	// DefaultSectionTitle replaces a blank digest section title.
	DefaultSectionTitle = "기타 안내"
)

// Clean returns s in NFC form, trimmed, with internal whitespace runs
// collapsed to a single space.
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Fold returns the comparison key used for case- and space-insensitive
// matching: NFC, lower-cased, all whitespace removed.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, norm.NFC.String(s))
}

// Text cleans an optional free-text field; an empty result is nil.
func Text(s string) *string {
	cleaned := Clean(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// Keywords trims and collapses each entry, drops empties, removes
// case-insensitive duplicates keeping the first spelling, and keeps at most
// [MaxKeywords] entries. The result is never nil.
func Keywords(raw []string) []string {
	out := make([]string, 0, min(len(raw), MaxKeywords))
	seen := make(map[string]struct{}, len(raw))
	for _, kw := range raw {
		cleaned := Clean(kw)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

// Digest normalizes a guideline digest. Sections whose items are all blank
// are dropped; a blank title on a surviving section becomes
// [DefaultSectionTitle]. When the summary is blank and no section survives,
// Digest returns nil so the field is omitted.
func Digest(summary string, sections []campaign.DigestSection) *campaign.GuidelineDigest {
	out := &campaign.GuidelineDigest{
		Summary:  strings.TrimSpace(norm.NFC.String(summary)),
		Sections: make([]campaign.DigestSection, 0, len(sections)),
	}

	for _, section := range sections {
		items := make([]string, 0, len(section.Items))
		for _, item := range section.Items {
			if cleaned := Clean(item); cleaned != "" {
				items = append(items, cleaned)
			}
		}
		if len(items) == 0 {
			continue
		}
		title := Clean(section.Title)
		if title == "" {
			title = DefaultSectionTitle
		}
		out.Sections = append(out.Sections, campaign.DigestSection{Title: title, Items: items})
	}

	if out.Summary == "" && len(out.Sections) == 0 {
		return nil
	}
	return out
}

var datePattern = regexp.MustCompile(`^(\d{4})\s*[.\-/년]\s*(\d{1,2})\s*[.\-/월]\s*(\d{1,2})\s*일?`)

var dateSentinels = map[string]struct{}{
	"-":    {},
	"null": {},
	"none": {},
	"n/a":  {},
	"미정":   {},
}

// Date normalizes one period bound. Empty strings and the sentinels "-",
// "null", "none", "n/a" and "미정" become nil. Dates written as
// "2024.03.01", "2024/3/1" or "2024년 3월 1일" become "2024-03-01"; other text
// is kept cleaned.
func Date(s string) *string {
	cleaned := Clean(s)
	if cleaned == "" {
		return nil
	}
	if _, sentinel := dateSentinels[strings.ToLower(cleaned)]; sentinel {
		return nil
	}

	if m := datePattern.FindStringSubmatch(cleaned); m != nil && !hasDigit(cleaned[len(m[0]):]) {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			formatted := fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
			return &formatted
		}
	}
	return &cleaned
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
