package campaign

// CampaignAnalysis is the validated, schema-conformant record describing one
// campaign guideline.
type CampaignAnalysis struct {
	Title                    string              `json:"title"`
	Points                   *int64              `json:"points"`
	Platform                 *string             `json:"platform"`
	Category                 *string             `json:"category"`
	ReviewChannel            *string             `json:"reviewChannel"`
	VisitInfo                *string             `json:"visitInfo"`
	Phone                    *string             `json:"phone"`
	ReviewRegistrationPeriod Period              `json:"reviewRegistrationPeriod"`
	ContentRequirements      ContentRequirements `json:"contentRequirements"`
	Keywords                 []string            `json:"keywords"`
	GuidelineDigest          *GuidelineDigest    `json:"guidelineDigest,omitempty"`
}

// Period is a date window. Either bound may be null.
type Period struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ContentRequirements lists the review types a participant must post.
// VisitReviewTypes behaves as a set: duplicates are collapsed and the order
// follows [VisitReviewTypeOrder].
type ContentRequirements struct {
	VisitReviewTypes     []VisitReviewType `json:"visitReviewTypes"`
	VisitReviewOtherText *string           `json:"visitReviewOtherText"`
}

// GuidelineDigest is a structured summary of the full guideline.
type GuidelineDigest struct {
	Summary  string          `json:"summary"`
	Sections []DigestSection `json:"sections"`
}

// DigestSection is one titled block of the digest. Items is never empty in a
// normalized record.
type DigestSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// VisitReviewType enumerates the visit-review channels a guideline can require.
type VisitReviewType string

const (
	VisitReviewNaverReservation VisitReviewType = "naverReservation"
	VisitReviewGoogle           VisitReviewType = "googleReview"
	VisitReviewOther            VisitReviewType = "other"
)

// VisitReviewTypeOrder is the canonical output order of visit-review types.
var VisitReviewTypeOrder = []VisitReviewType{
	VisitReviewNaverReservation,
	VisitReviewGoogle,
	VisitReviewOther,
}

// CategoryOther is the catch-all category. CategoryOtherLiteral is its
// accepted English spelling; parsed records always carry CategoryOther.
const (
	CategoryOther        = "기타"
	CategoryOtherLiteral = "other"
)

// Categories is the fixed set of accepted campaign categories.
var Categories = []string{
	"맛집",
	"카페",
	"뷰티",
	"패션",
	"식품",
	"생활",
	"숙박",
	"여행",
	"문화",
	"디지털",
	"육아",
	"반려동물",
	"도서",
	CategoryOther,
}

// IsCategory reports whether c is one of [Categories].
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
