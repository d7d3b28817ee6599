package campaign

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned when the guideline text is empty or
	// whitespace-only. No model call is made.
	ErrInvalidInput = errors.New("campaignlens: guideline text is empty")

	// ErrUpstreamUnavailable is returned when the language-model call failed
	// or produced an empty body.
	ErrUpstreamUnavailable = errors.New("campaignlens: language model unavailable")

	// ErrSchemaViolation matches any *SchemaViolationError through errors.Is.
	ErrSchemaViolation = errors.New("campaignlens: schema violation")

	// ErrQuotaExceeded is returned when the caller's daily quota denies the request.
	ErrQuotaExceeded = errors.New("campaignlens: daily quota exceeded")
)

// Violation pairs a field path with the reason it was rejected.
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Reason
	}
	return v.Path + ": " + v.Reason
}

// SchemaViolationError reports that no schema-valid record could be obtained
// from a model response, either because no JSON span was found or because the
// repaired object still failed validation.
type SchemaViolationError struct {
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrSchemaViolation.Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrSchemaViolation.Error(), strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrSchemaViolation) true for this type.
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// NewSchemaViolation builds a SchemaViolationError from violations.
func NewSchemaViolation(violations ...Violation) *SchemaViolationError {
	return &SchemaViolationError{Violations: violations}
}
