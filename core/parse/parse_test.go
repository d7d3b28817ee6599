package parse

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leofalp/campaignlens/core/campaign"
)

func TestParse_StrictJSON(t *testing.T) {
	input := `{
		"title": "스타벅스 체험단",
		"points": 15000,
		"platform": "레뷰",
		"category": "카페",
		"reviewChannel": "블로그",
		"visitInfo": null,
		"phone": "010-1234-5678",
		"reviewRegistrationPeriod": {"start": "2024-03-01", "end": "2024-03-10"},
		"contentRequirements": {"visitReviewTypes": ["naverReservation"], "visitReviewOtherText": null},
		"keywords": ["스타벅스", "카페"],
		"guidelineDigest": {"summary": "요약", "sections": [{"title": "방문", "items": ["평일 방문"]}]}
	}`

	res := Parse(input)
	if res.Status != StatusValid {
		t.Fatalf("Parse() status = %v, want valid (err: %v)", res.Status, res.Err)
	}

	got := res.Analysis
	if got.Title != "스타벅스 체험단" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Points == nil || *got.Points != 15000 {
		t.Errorf("Points = %v, want 15000", got.Points)
	}
	if got.Category == nil || *got.Category != "카페" {
		t.Errorf("Category = %v, want 카페", got.Category)
	}
	if got.VisitInfo != nil {
		t.Errorf("VisitInfo = %q, want nil", *got.VisitInfo)
	}
	if got.ReviewRegistrationPeriod.End == nil || *got.ReviewRegistrationPeriod.End != "2024-03-10" {
		t.Errorf("Period.End = %v", got.ReviewRegistrationPeriod.End)
	}
	if !reflect.DeepEqual(got.ContentRequirements.VisitReviewTypes, []campaign.VisitReviewType{campaign.VisitReviewNaverReservation}) {
		t.Errorf("VisitReviewTypes = %v", got.ContentRequirements.VisitReviewTypes)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"스타벅스", "카페"}) {
		t.Errorf("Keywords = %q", got.Keywords)
	}
	if got.GuidelineDigest == nil || len(got.GuidelineDigest.Sections) != 1 {
		t.Fatalf("GuidelineDigest = %+v", got.GuidelineDigest)
	}
	if len(res.Dropped) != 0 {
		t.Errorf("Dropped = %v, want none", res.Dropped)
	}
}

func TestParse_FencedTrailingCommaMatchesWellFormed(t *testing.T) {
	wellFormed := `{"title": "스타벅스 체험단", "points": 15000, "phone": null, "keywords": ["카페", "리뷰"]}`
	fenced := "분석 결과입니다.\n```json\n" +
		`{"title": "스타벅스 체험단", "points": 15000, "phone": null, "keywords": ["카페", "리뷰",],}` +
		"\n```\n"

	want := Parse(wellFormed)
	if want.Status != StatusValid {
		t.Fatalf("well-formed status = %v, want valid (err: %v)", want.Status, want.Err)
	}

	got := Parse(fenced)
	if got.Status != StatusRepaired {
		t.Fatalf("fenced status = %v, want repaired (err: %v)", got.Status, got.Err)
	}
	if !reflect.DeepEqual(got.Analysis, want.Analysis) {
		t.Errorf("fenced analysis = %+v\nwant %+v", got.Analysis, want.Analysis)
	}
}

func TestParse_Repairs(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
	}{
		{
			name:      "unquoted keys and single quotes",
			input:     `{title: '맛집 체험', points: 20000}`,
			wantTitle: "맛집 체험",
		},
		{
			name: "single-line comments",
			input: `{
				// campaign
				"title": "카페 체험"
			}`,
			wantTitle: "카페 체험",
		},
		{
			name:      "python constants",
			input:     `{"title": "뷰티 체험", "phone": None, "points": None}`,
			wantTitle: "뷰티 체험",
		},
		{
			name:      "truncated object",
			input:     `{"title": "숙박 체험", "points": 30000, "keywords": ["호텔"`,
			wantTitle: "숙박 체험",
		},
		{
			name:      "text before and after JSON",
			input:     "Here is the analysis:\n{\"title\": \"도서 체험\"}\nHope this helps!",
			wantTitle: "도서 체험",
		},
		{
			name:      "code block without language is located by braces",
			input:     "```\n{\"title\": \"식품 체험\",}\n```",
			wantTitle: "식품 체험",
		},
		{
			name:      "array of records uses the first object",
			input:     `[{"title": "첫 번째"}, {"title": "두 번째"}]`,
			wantTitle: "첫 번째",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)
			if res.Status != StatusRepaired {
				t.Fatalf("Parse() status = %v, want repaired (err: %v)", res.Status, res.Err)
			}
			if res.Analysis.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", res.Analysis.Title, tt.wantTitle)
			}
		})
	}
}

func TestParse_Coercion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		check       func(t *testing.T, a campaign.CampaignAnalysis)
		wantDropped []string
	}{
		{
			name:  "stringified korean amount",
			input: `{"title": "A", "points": "1만5천원"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points == nil || *a.Points != 15000 {
					t.Errorf("Points = %v, want 15000", a.Points)
				}
			},
		},
		{
			name:  "stringified grouped digits",
			input: `{"title": "A", "points": "15,000"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points == nil || *a.Points != 15000 {
					t.Errorf("Points = %v, want 15000", a.Points)
				}
			},
		},
		{
			name:  "fractional number is rounded",
			input: `{"title": "A", "points": 2500.6}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points == nil || *a.Points != 2501 {
					t.Errorf("Points = %v, want 2501", a.Points)
				}
			},
		},
		{
			name:  "negative points dropped",
			input: `{"title": "A", "points": -500}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points != nil {
					t.Errorf("Points = %d, want nil", *a.Points)
				}
			},
			wantDropped: []string{"points"},
		},
		{
			name:  "category alias",
			input: `{"title": "A", "category": "Other"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Category == nil || *a.Category != campaign.CategoryOther {
					t.Errorf("Category = %v, want %s", a.Category, campaign.CategoryOther)
				}
			},
		},
		{
			name:  "unknown category dropped",
			input: `{"title": "A", "category": "자동차"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Category != nil {
					t.Errorf("Category = %q, want nil", *a.Category)
				}
			},
			wantDropped: []string{"category"},
		},
		{
			name:  "visit review aliases collapse in enum order",
			input: `{"title": "A", "contentRequirements": {"visitReviewTypes": ["구글", "naver", "unknown", "google"]}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				want := []campaign.VisitReviewType{campaign.VisitReviewNaverReservation, campaign.VisitReviewGoogle}
				if !reflect.DeepEqual(a.ContentRequirements.VisitReviewTypes, want) {
					t.Errorf("VisitReviewTypes = %v, want %v", a.ContentRequirements.VisitReviewTypes, want)
				}
			},
			wantDropped: []string{"contentRequirements.visitReviewTypes.2"},
		},
		{
			name:  "keywords as one string",
			input: `{"title": "A", "keywords": "스타벅스, 카페 #체험단"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if want := []string{"스타벅스", "카페", "체험단"}; !reflect.DeepEqual(a.Keywords, want) {
					t.Errorf("Keywords = %q, want %q", a.Keywords, want)
				}
			},
		},
		{
			name:  "digest items as a single string",
			input: `{"title": "A", "guidelineDigest": {"summary": "요약", "sections": [{"title": "방문", "items": "평일 방문"}]}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				want := &campaign.GuidelineDigest{
					Summary:  "요약",
					Sections: []campaign.DigestSection{{Title: "방문", Items: []string{"평일 방문"}}},
				}
				if !reflect.DeepEqual(a.GuidelineDigest, want) {
					t.Errorf("GuidelineDigest = %+v, want %+v", a.GuidelineDigest, want)
				}
			},
		},
		{
			name:  "digest section without items",
			input: `{"title": "A", "guidelineDigest": {"summary": "요약", "sections": [{"title": "방문"}]}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.GuidelineDigest == nil || len(a.GuidelineDigest.Sections) != 1 {
					t.Fatalf("GuidelineDigest = %+v", a.GuidelineDigest)
				}
				if items := a.GuidelineDigest.Sections[0].Items; items == nil || len(items) != 0 {
					t.Errorf("Items = %#v, want empty slice", items)
				}
			},
		},
		{
			name:  "digest sections as a map keep key order",
			input: `{"title": "A", "guidelineDigest": {"summary": "", "sections": {"방문": ["평일"], "작성": "사진 10장"}}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.GuidelineDigest == nil || len(a.GuidelineDigest.Sections) != 2 {
					t.Fatalf("GuidelineDigest = %+v", a.GuidelineDigest)
				}
				if a.GuidelineDigest.Sections[0].Title != "방문" || a.GuidelineDigest.Sections[1].Title != "작성" {
					t.Errorf("section order = %+v", a.GuidelineDigest.Sections)
				}
			},
		},
		{
			name:  "period as one string",
			input: `{"title": "A", "reviewRegistrationPeriod": "2024.03.01 ~ 2024.03.10"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				p := a.ReviewRegistrationPeriod
				if p.Start == nil || *p.Start != "2024.03.01" || p.End == nil || *p.End != "2024.03.10" {
					t.Errorf("Period = %v ~ %v", p.Start, p.End)
				}
			},
		},
		{
			name:  "schema-wrapped values",
			input: `{"title": {"type": "string", "value": "A"}, "points": {"type": "integer", "value": 3000}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Title != "A" || a.Points == nil || *a.Points != 3000 {
					t.Errorf("got title=%q points=%v", a.Title, a.Points)
				}
			},
		},
		{
			name:  "envelope object",
			input: `{"analysis": {"title": "A", "points": 1000}}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Title != "A" || a.Points == nil || *a.Points != 1000 {
					t.Errorf("got title=%q points=%v", a.Title, a.Points)
				}
			},
		},
		{
			name:        "number beyond int64 dropped",
			input:       `{"title": "A", "points": 1e30}`,
			wantDropped: []string{"points"},
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points != nil {
					t.Errorf("Points = %d, want nil", *a.Points)
				}
			},
		},
		{
			name:        "digit string beyond int64 dropped",
			input:       `{"title": "A", "points": "999999999999999999999"}`,
			wantDropped: []string{"points"},
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Points != nil {
					t.Errorf("Points = %d, want nil", *a.Points)
				}
			},
		},
		{
			name:  "spelled-out null strings",
			input: `{"title": "A", "platform": "null", "phone": "N/A"}`,
			check: func(t *testing.T, a campaign.CampaignAnalysis) {
				if a.Platform != nil || a.Phone != nil {
					t.Errorf("Platform = %v, Phone = %v, want nil", a.Platform, a.Phone)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)
			if res.Status == StatusFailed {
				t.Fatalf("Parse() failed: %v", res.Err)
			}
			tt.check(t, res.Analysis)

			var dropped []string
			for _, d := range res.Dropped {
				dropped = append(dropped, d.Path)
			}
			if !reflect.DeepEqual(dropped, tt.wantDropped) {
				t.Errorf("Dropped paths = %q, want %q", dropped, tt.wantDropped)
			}
		})
	}
}

func TestParse_OutOfRangePointsAreRepaired(t *testing.T) {
	res := Parse(`{"title": "A", "points": 1e30}`)
	if res.Status != StatusRepaired {
		t.Fatalf("status = %v, want repaired (err: %v)", res.Status, res.Err)
	}
	if res.Analysis.Points != nil {
		t.Errorf("Points = %d, want nil", *res.Analysis.Points)
	}
}

func TestParse_OtherCategoryIsValid(t *testing.T) {
	for _, category := range []string{"other", "기타"} {
		t.Run(category, func(t *testing.T) {
			res := Parse(`{"title": "A", "category": "` + category + `"}`)
			if res.Status != StatusValid {
				t.Fatalf("status = %v, want valid (err: %v)", res.Status, res.Err)
			}
			if res.Analysis.Category == nil || *res.Analysis.Category != "기타" {
				t.Errorf("Category = %v, want 기타", res.Analysis.Category)
			}
		})
	}
}

func TestParse_SnakeCaseKeys(t *testing.T) {
	res := Parse(`{"title": "A", "review_channel": "블로그", "visit_info": "평일 방문"}`)
	if res.Status != StatusValid {
		t.Fatalf("status = %v, want valid (err: %v)", res.Status, res.Err)
	}
	if res.Analysis.ReviewChannel == nil || *res.Analysis.ReviewChannel != "블로그" {
		t.Errorf("ReviewChannel = %v", res.Analysis.ReviewChannel)
	}
	if res.Analysis.VisitInfo == nil || *res.Analysis.VisitInfo != "평일 방문" {
		t.Errorf("VisitInfo = %v", res.Analysis.VisitInfo)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{name: "empty", input: "", wantPath: ""},
		{name: "plain text", input: "죄송합니다, 분석할 수 없습니다.", wantPath: ""},
		{name: "missing title", input: `{"points": 1000}`, wantPath: "title"},
		{name: "blank title", input: `{"title": "   "}`, wantPath: "title"},
		{name: "title of wrong type", input: `{"title": true}`, wantPath: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)
			if res.Status != StatusFailed {
				t.Fatalf("Parse() status = %v, want failed", res.Status)
			}
			if res.Err == nil {
				t.Fatal("Parse() failed without an error")
			}
			if !errors.Is(res.Err, campaign.ErrSchemaViolation) {
				t.Errorf("error %v does not match ErrSchemaViolation", res.Err)
			}
			if len(res.Err.Violations) == 0 || res.Err.Violations[0].Path != tt.wantPath {
				t.Errorf("violations = %v, want first path %q", res.Err.Violations, tt.wantPath)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "simple object", input: `{"title":"A"}`, want: `{"title":"A"}`, wantOK: true},
		{name: "text before", input: "Here is the result:\n{\"title\":\"A\"}", want: `{"title":"A"}`, wantOK: true},
		{name: "text after", input: "{\"title\":\"A\"}\nThank you!", want: `{"title":"A"}`, wantOK: true},
		{name: "first of several objects", input: `{"first":1} and {"second":2}`, want: `{"first":1}`, wantOK: true},
		{name: "nested object", input: `{"outer":{"inner":"value"}} done`, want: `{"outer":{"inner":"value"}}`, wantOK: true},
		{name: "braces inside strings", input: `{"text":"a } b \" { c"} tail`, want: `{"text":"a } b \" { c"}`, wantOK: true},
		{name: "json fence wins", input: "{\"ignored\":1}\n```json\n{\"title\":\"A\"}\n```", want: `{"title":"A"}`, wantOK: true},
		{name: "uppercase fence", input: "```JSON\n{\"title\":\"A\"}\n```", want: `{"title":"A"}`, wantOK: true},
		{name: "unterminated fence", input: "```json\n{\"title\":\"A\"", want: `{"title":"A"`, wantOK: true},
		{name: "unbalanced object returns the tail", input: "result: {\"title\": \"A\", ", want: `{"title": "A",`, wantOK: true},
		{name: "no JSON", input: "This is just plain text", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Locate() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	v, err := Decode(`{"b": 1, "a": [true, null, "x"], "b": 2.50}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("Decode() kind = %v, want object", v.Kind())
	}
	if want := []string{"b", "a"}; !reflect.DeepEqual(obj.Keys(), want) {
		t.Errorf("Keys() = %q, want %q", obj.Keys(), want)
	}
	if b, _ := obj.Get("b"); b != Number("2.50") {
		t.Errorf("duplicate key kept %v, want last value 2.50", b)
	}
	a, _ := obj.Get("a")
	if want := (Array{Bool(true), Null{}, String("x")}); !reflect.DeepEqual(a, want) {
		t.Errorf("a = %#v, want %#v", a, want)
	}

	for _, bad := range []string{"", `{"a":1,}`, `{"a":1} {"b":2}`, `{a:1}`} {
		if _, err := Decode(bad); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", bad)
		}
	}
}

func TestValidate(t *testing.T) {
	violations, err := Validate(map[string]any{"title": "A", "category": "자동차", "points": -1})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	paths := make([]string, 0, len(violations))
	for _, v := range violations {
		paths = append(paths, v.Path)
	}
	joined := strings.Join(paths, ",")
	if !strings.Contains(joined, "category") || !strings.Contains(joined, "points") {
		t.Errorf("violation paths = %q, want category and points", paths)
	}

	ok, err := Validate(map[string]any{"title": "A", "category": nil, "keywords": []any{"x"}})
	if err != nil || len(ok) != 0 {
		t.Errorf("Validate(valid) = %v, %v; want no violations", ok, err)
	}
}

func TestSchemaListsEveryCategory(t *testing.T) {
	schema := Schema()
	for _, c := range campaign.Categories {
		if !strings.Contains(schema, `"`+c+`"`) {
			t.Errorf("schema is missing category %q", c)
		}
	}
	if !strings.Contains(schema, `"`+campaign.CategoryOtherLiteral+`"`) {
		t.Errorf("schema is missing category %q", campaign.CategoryOtherLiteral)
	}
}
