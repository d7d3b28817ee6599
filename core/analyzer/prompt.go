package analyzer

import (
	"fmt"
	"strings"

	"github.com/leofalp/campaignlens/core/campaign"
	"github.com/leofalp/campaignlens/core/parse"
)

const systemPromptTemplate = `You extract structured data from Korean influencer campaign guidelines (체험단 / 리뷰 캠페인 안내문).

Answer with a single JSON object that conforms to this JSON Schema, and nothing else:

%s

Rules:
- title: the campaign name as written in the guideline. Never empty.
- points: the reward as an integer in won. Convert Korean units ("1만5천원" = 15000). Use null when no reward is stated.
- platform: the campaign platform. Prefer one of the candidate platforms when the guideline mentions it.
- category: exactly one of %s, or null.
- phone: the contact number as written, or null.
- reviewRegistrationPeriod: start and end dates as YYYY-MM-DD when possible, otherwise as written, or null.
- contentRequirements.visitReviewTypes: any of naverReservation, googleReview, other. Describe "other" in visitReviewOtherText.
- keywords: the search keywords the reviewer must include, in order.
- guidelineDigest: a short summary and titled sections listing the important instructions.
- Do not invent values that are not in the guideline. Use null instead.`

// SystemPrompt returns the system prompt that tells the model the response
// contract.
func SystemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, parse.Schema(), strings.Join(campaign.Categories, ", "))
}

// BuildPrompt returns the user message for one analysis.
func BuildPrompt(guideline string, platforms []string) string {
	var b strings.Builder
	if len(platforms) > 0 {
		b.WriteString("Candidate platforms: ")
		b.WriteString(strings.Join(platforms, ", "))
		b.WriteString("\n\n")
	}
	b.WriteString("Guideline:\n")
	b.WriteString(strings.TrimSpace(guideline))
	return b.String()
}
