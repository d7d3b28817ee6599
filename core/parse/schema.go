package parse

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/leofalp/campaignlens/core/campaign"
)

// schemaTemplate is the draft-07 schema of a campaign record. The category
// and visit-review enums are filled in from the campaign package so that the
// two never drift apart.
const schemaTemplate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CampaignAnalysis",
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "points": {"type": ["integer", "null"], "minimum": 0},
    "platform": {"type": ["string", "null"]},
    "category": {"type": ["string", "null"], "enum": %s},
    "reviewChannel": {"type": ["string", "null"]},
    "visitInfo": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "reviewRegistrationPeriod": {
      "type": ["object", "null"],
      "properties": {
        "start": {"type": ["string", "null"]},
        "end": {"type": ["string", "null"]}
      }
    },
    "contentRequirements": {
      "type": ["object", "null"],
      "properties": {
        "visitReviewTypes": {
          "type": ["array", "null"],
          "items": {"type": "string", "enum": %s}
        },
        "visitReviewOtherText": {"type": ["string", "null"]}
      }
    },
    "keywords": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "guidelineDigest": {
      "type": ["object", "null"],
      "properties": {
        "summary": {"type": "string"},
        "sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["title", "items"],
            "properties": {
              "title": {"type": "string"},
              "items": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    }
  }
}`

var (
	schemaText = sync.OnceValue(func() string {
		categories := make([]any, 0, len(campaign.Categories)+2)
		for _, c := range campaign.Categories {
			categories = append(categories, c)
		}
		categories = append(categories, campaign.CategoryOtherLiteral, nil)

		visitTypes := make([]string, len(campaign.VisitReviewTypeOrder))
		for i, vt := range campaign.VisitReviewTypeOrder {
			visitTypes[i] = string(vt)
		}

		return fmt.Sprintf(schemaTemplate, mustJSON(categories), mustJSON(visitTypes))
	})

	compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaText()))
		if err != nil {
			return nil, fmt.Errorf("failed to compile campaign schema: %w", err)
		}
		return schema, nil
	})
)

// Schema returns the JSON Schema every accepted record conforms to. It is
// also sent to the model as the response contract.
func Schema() string {
	return schemaText()
}

// Validate checks doc (any value encoding/json can marshal, including the
// output of [Interface]) against [Schema] and returns one violation per
// failed constraint, sorted by path.
func Validate(doc any) ([]campaign.Violation, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]campaign.Violation, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, campaign.Violation{
			Path:   fieldPath(re.Field()),
			Reason: re.Description(),
		})
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Path < violations[j].Path
	})
	return violations, nil
}

const rootField = "(root)"

// fieldPath turns gojsonschema's "(root)" marker into an empty path.
func fieldPath(field string) string {
	if field == rootField {
		return ""
	}
	return strings.TrimPrefix(field, rootField+".")
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
