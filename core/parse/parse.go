package parse

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/campaignlens/core/campaign"
)

// Status is the outcome of [Parse].
type Status int

const (
	// StatusFailed means no schema-valid record could be recovered.
	StatusFailed Status = iota
	// StatusValid means the response was strict JSON that passed the schema.
	StatusValid
	// StatusRepaired means the record was recovered by locating, repairing
	// or coercing the response, or a value in it was dropped.
	StatusRepaired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusRepaired:
		return "repaired"
	default:
		return "failed"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the explicit outcome of parsing one model response. When Status
// is [StatusFailed], Err is set and Analysis is the zero value.
type Result struct {
	Status   Status
	Analysis campaign.CampaignAnalysis

	// Dropped lists values that were discarded during coercion, such as an
	// unknown category or a negative amount.
	Dropped []campaign.Violation

	Err *campaign.SchemaViolationError
}

// Parse turns a raw model response into a campaign record.
//
// The response is first decoded strictly and validated against [Schema]. If
// that fails, the JSON span is located (a ```json fence, or the first
// balanced object), repaired with jsonrepair, decoded, coerced field by
// field and validated again. A record that still violates the schema, or a
// response with no JSON object at all, yields [StatusFailed].
func Parse(content string) Result {
	trimmed := strings.TrimSpace(content)

	if v, err := Decode(trimmed); err == nil {
		if violations, err := Validate(Interface(v)); err == nil && len(violations) == 0 {
			analysis, dropped, fatal := coerce(v)
			if len(fatal) == 0 && len(dropped) == 0 {
				return Result{Status: StatusValid, Analysis: analysis}
			}
		}
	}

	span, ok := Locate(trimmed)
	if !ok {
		return failed(campaign.Violation{Reason: "no JSON object found in response"})
	}

	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		return failed(campaign.Violation{Reason: fmt.Sprintf("failed to repair JSON: %v", err)})
	}

	v, err := Decode(repaired)
	if err != nil {
		return failed(campaign.Violation{Reason: fmt.Sprintf("failed to decode repaired JSON: %v", err)})
	}

	analysis, dropped, fatal := coerce(v)
	if len(fatal) > 0 {
		return failed(fatal...)
	}

	violations, err := Validate(analysis)
	if err != nil {
		return failed(campaign.Violation{Reason: err.Error()})
	}
	if len(violations) > 0 {
		return failed(violations...)
	}

	return Result{Status: StatusRepaired, Analysis: analysis, Dropped: dropped}
}

func failed(violations ...campaign.Violation) Result {
	return Result{
		Status: StatusFailed,
		Err:    campaign.NewSchemaViolation(violations...),
	}
}
