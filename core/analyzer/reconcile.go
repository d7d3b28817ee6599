package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leofalp/campaignlens/core/campaign"
	"github.com/leofalp/campaignlens/core/extract"
	"github.com/leofalp/campaignlens/core/normalize"
	"github.com/leofalp/campaignlens/core/parse"
	"github.com/leofalp/campaignlens/core/phone"
	"github.com/leofalp/campaignlens/internal/utils"
	"github.com/leofalp/campaignlens/providers/ai"
)

// State is a step of the reconciliation state machine.
type State int

const (
	StateParsing State = iota
	StateNormalizing
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateParsing:
		return "parsing"
	case StateNormalizing:
		return "normalizing"
	case StateReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// SourceRegex marks a field value recovered from the guideline text.
const SourceRegex = "regex"

// Correction records a field the model left empty and the value recovered
// for it from the guideline text.
type Correction struct {
	Field  string `json:"field"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

// Result is one finished analysis.
type Result struct {
	RequestID string                    `json:"requestId,omitempty"`
	Analysis  campaign.CampaignAnalysis `json:"analysis"`

	// Status is parse.StatusValid for a clean first pass and
	// parse.StatusRepaired when the response had to be repaired.
	Status parse.Status `json:"status"`

	Corrections []Correction         `json:"corrections"`
	Dropped     []campaign.Violation `json:"dropped"`
	Usage       *ai.Usage            `json:"usage,omitempty"`
	CostUSD     float64              `json:"costUsd,omitempty"`
	Cached      bool                 `json:"cached"`
}

// Repaired reports whether the model response needed repair.
func (r *Result) Repaired() bool {
	return r.Status == parse.StatusRepaired
}

// Reconcile turns one model response into a finished record for guideline.
//
// It runs three states. PARSING recovers a record from response and aborts
// with a *campaign.SchemaViolationError when none can be found. NORMALIZING
// cleans every field. RECONCILING fills points, platform and phone from the
// guideline text when the model left them empty; model values always win.
//
// Reconcile is pure: it performs no I/O and keeps no state between calls.
func Reconcile(guideline string, platforms []string, response string) (*Result, error) {
	return reconcile(context.Background(), discardLogger, guideline, platforms, response)
}

var discardLogger = slog.New(slog.DiscardHandler)

type machine struct {
	ctx    context.Context
	logger *slog.Logger
	state  State
	result Result
}

func (m *machine) enter(next State) {
	m.logger.DebugContext(m.ctx, "analysis state",
		slog.String("from", m.state.String()),
		slog.String("to", next.String()))
	m.state = next
}

func reconcile(ctx context.Context, logger *slog.Logger, guideline string, platforms []string, response string) (*Result, error) {
	if strings.TrimSpace(guideline) == "" {
		return nil, campaign.ErrInvalidInput
	}

	m := &machine{ctx: ctx, logger: logger, state: StateParsing}

	parsed := parse.Parse(response)
	if parsed.Status == parse.StatusFailed {
		return nil, parsed.Err
	}
	m.result.Status = parsed.Status
	m.result.Analysis = parsed.Analysis
	m.result.Dropped = append([]campaign.Violation{}, parsed.Dropped...)

	m.enter(StateNormalizing)
	m.normalize(platforms)

	m.enter(StateReconciling)
	m.fillGaps(guideline, platforms)

	if m.result.Corrections == nil {
		m.result.Corrections = []Correction{}
	}
	return &m.result, nil
}

func (m *machine) normalize(platforms []string) {
	a := &m.result.Analysis

	a.Title = normalize.Clean(a.Title)
	a.Platform = canonicalPlatform(normalize.Text(utils.Deref(a.Platform, "")), platforms)
	a.ReviewChannel = normalize.Text(utils.Deref(a.ReviewChannel, ""))
	a.VisitInfo = normalize.Text(utils.Deref(a.VisitInfo, ""))

	if a.Phone != nil {
		raw := *a.Phone
		a.Phone = nil
		if normalized := phone.Normalize(raw); phone.IsCanonical(normalized) {
			a.Phone = utils.Ptr(normalized)
		} else if strings.TrimSpace(raw) != "" {
			m.result.Dropped = append(m.result.Dropped, campaign.Violation{
				Path:   "phone",
				Reason: "\"" + strings.TrimSpace(raw) + "\" is not a recognizable phone number",
			})
		}
	}

	a.ReviewRegistrationPeriod = campaign.Period{
		Start: normalize.Date(utils.Deref(a.ReviewRegistrationPeriod.Start, "")),
		End:   normalize.Date(utils.Deref(a.ReviewRegistrationPeriod.End, "")),
	}

	req := &a.ContentRequirements
	if req.VisitReviewTypes == nil {
		req.VisitReviewTypes = []campaign.VisitReviewType{}
	}
	req.VisitReviewOtherText = normalize.Text(utils.Deref(req.VisitReviewOtherText, ""))

	a.Keywords = normalize.Keywords(a.Keywords)

	if a.GuidelineDigest != nil {
		a.GuidelineDigest = normalize.Digest(a.GuidelineDigest.Summary, a.GuidelineDigest.Sections)
	}
}

func (m *machine) fillGaps(guideline string, platforms []string) {
	a := &m.result.Analysis
	found := extract.All(guideline, platforms)

	if a.Points == nil && found.Points != nil {
		a.Points = found.Points
		m.correct("points", *found.Points)
	}
	if a.Platform == nil && found.Platform != nil {
		a.Platform = found.Platform
		m.correct("platform", *found.Platform)
	}
	if a.Phone == nil && found.Phone != nil {
		a.Phone = found.Phone
		m.correct("phone", *found.Phone)
	}
}

func (m *machine) correct(field string, value any) {
	m.result.Corrections = append(m.result.Corrections, Correction{Field: field, Value: value, Source: SourceRegex})
	m.logger.InfoContext(m.ctx, "analysis corrected",
		slog.String("field", field),
		slog.Any("value", value),
		slog.String("source", SourceRegex))
}

// canonicalPlatform rewrites platform to the spelling of the candidate it
// matches ignoring case and spaces.
func canonicalPlatform(platform *string, candidates []string) *string {
	if platform == nil {
		return nil
	}
	key := normalize.Fold(*platform)
	for _, candidate := range candidates {
		if normalize.Fold(candidate) == key {
			return utils.Ptr(strings.TrimSpace(candidate))
		}
	}
	return platform
}
