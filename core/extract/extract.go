// Package extract re-derives high-value campaign fields directly from the
// guideline text with deterministic regex families. It is the fallback that
// fills gaps left by the language model; every function degrades to "not
// found" instead of failing.
package extract

import (
	"regexp"
	"strings"

	"github.com/leofalp/campaignlens/core/amount"
	"github.com/leofalp/campaignlens/core/normalize"
	"github.com/leofalp/campaignlens/core/phone"
)

// Corrections holds the fields recovered from the guideline text. A nil
// field means no pattern matched.
type Corrections struct {
	Points   *int64
	Phone    *string
	Platform *string
}

// All runs every extractor over text.
func All(text string, platforms []string) Corrections {
	var c Corrections
	if points, ok := Reward(text); ok {
		c.Points = &points
	}
	if number, ok := Phone(text); ok {
		c.Phone = &number
	}
	if platform, ok := Platform(text, platforms); ok {
		c.Platform = &platform
	}
	return c
}

// Reward returns the largest positive amount quoted on any line that
// mentions a reward-context keyword. Ranges resolve to their larger side.
func Reward(text string) (int64, bool) {
	var best int64
	for _, line := range strings.Split(text, "\n") {
		if !isRewardLine(line) {
			continue
		}
		line = stripNoise(line)

		for _, m := range amountMatches(rewardRangePattern, line) {
			best = maxAmount(best, m, amount.ParseRange)
		}
		for _, m := range amountMatches(rewardUnitPattern, line) {
			best = maxAmount(best, m, amount.Parse)
		}
		for _, m := range rewardPlainPattern.FindAllString(line, -1) {
			best = maxAmount(best, m, amount.Parse)
		}
	}
	return best, best > 0
}

// Phone returns the first phone-shaped substring of text in canonical form.
func Phone(text string) (string, bool) {
	for _, m := range phonePattern.FindAllStringSubmatch(text, -1) {
		if number := phone.Normalize(m[1]); phone.IsCanonical(number) {
			return number, true
		}
	}
	return "", false
}

// Platform returns the first candidate whose folded form (lower-cased,
// whitespace removed) appears in the folded guideline text.
func Platform(text string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	haystack := normalize.Fold(text)
	for _, candidate := range candidates {
		needle := normalize.Fold(candidate)
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			return strings.TrimSpace(candidate), true
		}
	}
	return "", false
}

func isRewardLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range rewardKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// stripNoise blanks phone numbers, full dates and clock times.
func stripNoise(line string) string {
	for _, loc := range phonePattern.FindAllStringSubmatchIndex(line, -1) {
		start, end := loc[2], loc[3]
		line = line[:start] + strings.Repeat(" ", end-start) + line[end:]
	}
	line = fullDatePattern.ReplaceAllString(line, " ")
	return clockPattern.ReplaceAllString(line, " ")
}

// amountMatches returns the matches of pattern in line that are not followed
// by a count unit.
func amountMatches(pattern *regexp.Regexp, line string) []string {
	var out []string
	for _, loc := range pattern.FindAllStringIndex(line, -1) {
		if countUnitPattern.MatchString(line[loc[1]:]) {
			continue
		}
		out = append(out, line[loc[0]:loc[1]])
	}
	return out
}

func maxAmount(best int64, match string, parse func(string) (int64, bool)) int64 {
	if v, ok := parse(match); ok && v > best {
		return v
	}
	return best
}
