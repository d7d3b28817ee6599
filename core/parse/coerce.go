package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/leofalp/campaignlens/core/amount"
	"github.com/leofalp/campaignlens/core/campaign"
	"github.com/leofalp/campaignlens/core/normalize"
)

// categoryAliases maps folded spellings onto the catch-all category.
var categoryAliases = map[string]string{
	campaign.CategoryOtherLiteral: campaign.CategoryOther,
	"etc":                         campaign.CategoryOther,
	"etc.":                        campaign.CategoryOther,
	"기타":                          campaign.CategoryOther,
}

// visitReviewAliases maps folded spellings onto visit-review types.
var visitReviewAliases = map[string]campaign.VisitReviewType{
	"naverreservation": campaign.VisitReviewNaverReservation,
	"naver":            campaign.VisitReviewNaverReservation,
	"네이버":              campaign.VisitReviewNaverReservation,
	"네이버예약":            campaign.VisitReviewNaverReservation,
	"네이버예약리뷰":          campaign.VisitReviewNaverReservation,
	"googlereview":     campaign.VisitReviewGoogle,
	"google":           campaign.VisitReviewGoogle,
	"구글":               campaign.VisitReviewGoogle,
	"구글리뷰":             campaign.VisitReviewGoogle,
	"other":            campaign.VisitReviewOther,
	"etc":              campaign.VisitReviewOther,
	"기타":                          campaign.VisitReviewOther,
}

// periodSeparator splits a period given as one string ("3/1 ~ 3/10").
var periodSeparator = regexp.MustCompile(`\s+[~～〜\-–—]\s+|\s*[~～〜]\s*`)

// listSeparator splits list fields the model returned as one string.
var listSeparator = regexp.MustCompile(`[,，、\n#]+`)

// coercion builds a typed record from a decoded value. Values that cannot be
// coerced are dropped and reported; only a missing title is fatal.
type coercion struct {
	dropped    []campaign.Violation
	violations []campaign.Violation
}

func (c *coercion) drop(path, reason string) {
	c.dropped = append(c.dropped, campaign.Violation{Path: path, Reason: reason})
}

func (c *coercion) fail(path, reason string) {
	c.violations = append(c.violations, campaign.Violation{Path: path, Reason: reason})
}

// coerce converts v into a CampaignAnalysis. The first slice lists dropped
// values, the second the violations that make the record unusable.
func coerce(v Value) (campaign.CampaignAnalysis, []campaign.Violation, []campaign.Violation) {
	var c coercion
	var out campaign.CampaignAnalysis

	obj, ok := rootObject(unwrap(v))
	if !ok {
		c.fail("", fmt.Sprintf("expected object, got %s", v.Kind()))
		return out, c.dropped, c.violations
	}

	if raw, ok := obj.Lookup("title"); ok {
		if s, ok := scalarText(raw); ok {
			out.Title = normalize.Clean(s)
		}
	}
	if out.Title == "" {
		c.fail("title", "required non-empty string")
	}

	out.Points = c.points(field(obj, "points"))
	out.Platform = c.text("platform", field(obj, "platform"))
	out.Category = c.category(field(obj, "category"))
	out.ReviewChannel = c.text("reviewChannel", field(obj, "reviewChannel"))
	out.VisitInfo = c.text("visitInfo", field(obj, "visitInfo"))
	out.Phone = c.text("phone", field(obj, "phone"))
	out.ReviewRegistrationPeriod = c.period(field(obj, "reviewRegistrationPeriod"))
	out.ContentRequirements = c.requirements(field(obj, "contentRequirements"))
	out.Keywords = c.stringList("keywords", field(obj, "keywords"))
	out.GuidelineDigest = c.digest(field(obj, "guidelineDigest"))

	return out, c.dropped, c.violations
}

// field returns the named member or Null when it is absent.
func field(obj Object, name string) Value {
	if v, ok := obj.Lookup(name); ok {
		return v
	}
	return Null{}
}

// rootObject picks the record object: the value itself, the first object of
// an array, or the single member of an envelope such as {"analysis": {...}}.
func rootObject(v Value) (Object, bool) {
	switch t := v.(type) {
	case Object:
		if _, hasTitle := t.Lookup("title"); !hasTitle && t.Len() == 1 {
			if inner, ok := t.fields[t.keys[0]].(Object); ok {
				if _, ok := inner.Lookup("title"); ok {
					return inner, true
				}
			}
		}
		return t, true
	case Array:
		for _, item := range t {
			if obj, ok := item.(Object); ok {
				return rootObject(obj)
			}
		}
	}
	return Object{}, false
}

// unwrap replaces schema-shaped {"type": "...", "value": X} envelopes with X,
// at any depth. It returns a new value and leaves v untouched.
func unwrap(v Value) Value {
	switch t := v.(type) {
	case Object:
		if t.Len() == 2 {
			typ, hasType := t.Get("type")
			val, hasValue := t.Get("value")
			if hasType && hasValue && typ.Kind() == KindString {
				return unwrap(val)
			}
		}
		var out Object
		for _, k := range t.keys {
			out.set(k, unwrap(t.fields[k]))
		}
		return out
	case Array:
		out := make(Array, len(t))
		for i, item := range t {
			out[i] = unwrap(item)
		}
		return out
	default:
		return v
	}
}

func scalarText(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Number:
		return string(t), true
	default:
		return "", false
	}
}

// isNullWord reports whether a string is a spelled-out null.
func isNullWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "none", "nil", "n/a", "undefined":
		return true
	}
	return false
}

func (c *coercion) points(v Value) *int64 {
	switch t := v.(type) {
	case Null:
		return nil
	case Number:
		f, err := json.Number(t).Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			c.drop("points", fmt.Sprintf("%q is not a finite number", string(t)))
			return nil
		}
		if f < 0 {
			c.drop("points", "negative amount")
			return nil
		}
		if !amount.InRange(f) {
			c.drop("points", fmt.Sprintf("%s is out of range", string(t)))
			return nil
		}
		n := int64(math.Round(f))
		return &n
	case String:
		s := strings.TrimSpace(string(t))
		if isNullWord(s) {
			return nil
		}
		if strings.HasPrefix(s, "-") {
			c.drop("points", "negative amount")
			return nil
		}
		if n, ok := amount.ParseRange(s); ok {
			return &n
		}
		c.drop("points", fmt.Sprintf("%q is not an amount", s))
		return nil
	default:
		c.drop("points", fmt.Sprintf("expected integer, got %s", v.Kind()))
		return nil
	}
}

func (c *coercion) text(path string, v Value) *string {
	switch t := v.(type) {
	case Null:
		return nil
	case String:
		if isNullWord(string(t)) {
			return nil
		}
		s := strings.TrimSpace(string(t))
		return &s
	case Number:
		s := string(t)
		return &s
	case Array:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := scalarText(item); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		if len(parts) == 0 {
			return nil
		}
		s := strings.Join(parts, ", ")
		return &s
	default:
		c.drop(path, fmt.Sprintf("expected string, got %s", v.Kind()))
		return nil
	}
}

func (c *coercion) category(v Value) *string {
	s := c.text("category", v)
	if s == nil {
		return nil
	}
	key := normalize.Fold(*s)
	if alias, ok := categoryAliases[key]; ok {
		return &alias
	}
	for _, known := range campaign.Categories {
		if normalize.Fold(known) == key {
			canonical := known
			return &canonical
		}
	}
	c.drop("category", fmt.Sprintf("%q is not an allowed category", *s))
	return nil
}

func (c *coercion) period(v Value) campaign.Period {
	const path = "reviewRegistrationPeriod"
	switch t := v.(type) {
	case Null:
		return campaign.Period{}
	case Object:
		return campaign.Period{
			Start: c.text(path+".start", field(t, "start")),
			End:   c.text(path+".end", field(t, "end")),
		}
	case String:
		s := strings.TrimSpace(string(t))
		if isNullWord(s) {
			return campaign.Period{}
		}
		parts := periodSeparator.Split(s, 2)
		if len(parts) == 2 {
			start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			return campaign.Period{Start: &start, End: &end}
		}
		return campaign.Period{End: &s}
	default:
		c.drop(path, fmt.Sprintf("expected object, got %s", v.Kind()))
		return campaign.Period{}
	}
}

func (c *coercion) requirements(v Value) campaign.ContentRequirements {
	const path = "contentRequirements"
	var out campaign.ContentRequirements

	obj, ok := v.(Object)
	if !ok {
		if v.Kind() != KindNull {
			c.drop(path, fmt.Sprintf("expected object, got %s", v.Kind()))
		}
		return out
	}

	seen := make(map[campaign.VisitReviewType]bool)
	for i, raw := range c.stringList(path+".visitReviewTypes", field(obj, "visitReviewTypes")) {
		vt, ok := visitReviewAliases[normalize.Fold(raw)]
		if !ok {
			c.drop(fmt.Sprintf("%s.visitReviewTypes.%d", path, i), fmt.Sprintf("%q is not a visit review type", raw))
			continue
		}
		seen[vt] = true
	}
	for _, vt := range campaign.VisitReviewTypeOrder {
		if seen[vt] {
			out.VisitReviewTypes = append(out.VisitReviewTypes, vt)
		}
	}

	out.VisitReviewOtherText = c.text(path+".visitReviewOtherText", field(obj, "visitReviewOtherText"))
	return out
}

// stringList accepts an array of scalars or a single delimited string.
func (c *coercion) stringList(path string, v Value) []string {
	switch t := v.(type) {
	case Null:
		return nil
	case String:
		var out []string
		for _, part := range listSeparator.Split(string(t), -1) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	case Array:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := scalarText(item)
			if !ok {
				if item.Kind() != KindNull {
					c.drop(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("expected string, got %s", item.Kind()))
				}
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		c.drop(path, fmt.Sprintf("expected array, got %s", v.Kind()))
		return nil
	}
}

// digest accepts the object form, a bare summary string, and sections given
// as a {"title": items} map instead of a list.
func (c *coercion) digest(v Value) *campaign.GuidelineDigest {
	const path = "guidelineDigest"
	switch t := v.(type) {
	case Null:
		return nil
	case String:
		return &campaign.GuidelineDigest{Summary: strings.TrimSpace(string(t)), Sections: []campaign.DigestSection{}}
	case Object:
		out := &campaign.GuidelineDigest{Sections: []campaign.DigestSection{}}
		if s, ok := scalarText(field(t, "summary")); ok {
			out.Summary = s
		}

		switch sections := field(t, "sections").(type) {
		case Array:
			for i, item := range sections {
				section, ok := item.(Object)
				if !ok {
					c.drop(fmt.Sprintf("%s.sections.%d", path, i), fmt.Sprintf("expected object, got %s", item.Kind()))
					continue
				}
				title, _ := scalarText(field(section, "title"))
				out.Sections = append(out.Sections, campaign.DigestSection{
					Title: title,
					Items: c.stringItems(fmt.Sprintf("%s.sections.%d.items", path, i), field(section, "items")),
				})
			}
		case Object:
			for _, title := range sections.keys {
				out.Sections = append(out.Sections, campaign.DigestSection{
					Title: title,
					Items: c.stringItems(path+".sections."+title, sections.fields[title]),
				})
			}
		case Null:
		default:
			c.drop(path+".sections", fmt.Sprintf("expected array, got %s", sections.Kind()))
		}
		return out
	default:
		c.drop(path, fmt.Sprintf("expected object, got %s", v.Kind()))
		return nil
	}
}

// stringItems is like stringList but keeps a single string as one item and
// never returns nil.
func (c *coercion) stringItems(path string, v Value) []string {
	if s, ok := v.(String); ok {
		return []string{string(s)}
	}
	if items := c.stringList(path, v); items != nil {
		return items
	}
	return []string{}
}
