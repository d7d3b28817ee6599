package cost

import (
	"fmt"
	"strings"

	"github.com/leofalp/campaignlens/providers/ai"
)

// ModelCost represents the pricing structure for a language model.
// Costs are expressed in USD per million tokens.
//
// Example usage:
//
//	modelCost := cost.ModelCost{
//	    InputCostPerMillion:       0.15,
//	    OutputCostPerMillion:      0.60,
//	    CachedInputCostPerMillion: 0.075,
//	}
type ModelCost struct {
	// InputCostPerMillion is the cost in USD per 1 million input tokens
	InputCostPerMillion float64 `json:"input_cost_per_million"`

	// OutputCostPerMillion is the cost in USD per 1 million output tokens
	OutputCostPerMillion float64 `json:"output_cost_per_million"`

	// CachedInputCostPerMillion is the cost in USD per 1 million cached input tokens.
	// Zero bills cached tokens at the input rate.
	CachedInputCostPerMillion float64 `json:"cached_input_cost_per_million,omitempty"`
}

// known lists published prices for the models campaignlens is usually run with.
var known = map[string]ModelCost{
	"gpt-4o-mini":  {InputCostPerMillion: 0.15, OutputCostPerMillion: 0.60, CachedInputCostPerMillion: 0.075},
	"gpt-4o":       {InputCostPerMillion: 2.50, OutputCostPerMillion: 10.00, CachedInputCostPerMillion: 1.25},
	"gpt-4.1-mini": {InputCostPerMillion: 0.40, OutputCostPerMillion: 1.60, CachedInputCostPerMillion: 0.10},
	"gpt-4.1":      {InputCostPerMillion: 2.00, OutputCostPerMillion: 8.00, CachedInputCostPerMillion: 0.50},
}

// For returns the price of model. Dated snapshots such as
// "gpt-4o-mini-2024-07-18" resolve to their base model.
func For(model string) (ModelCost, bool) {
	model = strings.ToLower(strings.TrimSpace(model))
	if mc, ok := known[model]; ok {
		return mc, true
	}

	best, bestLen := ModelCost{}, 0
	for name, mc := range known {
		if strings.HasPrefix(model, name+"-") && len(name) > bestLen {
			best, bestLen = mc, len(name)
		}
	}
	return best, bestLen > 0
}

// IsZero reports whether no price is set.
func (mc ModelCost) IsZero() bool {
	return mc == ModelCost{}
}

// CalculateInputCost calculates the cost for the given number of input tokens.
func (mc ModelCost) CalculateInputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.InputCostPerMillion
}

// CalculateOutputCost calculates the cost for the given number of output tokens.
func (mc ModelCost) CalculateOutputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.OutputCostPerMillion
}

// CalculateCachedCost calculates the cost for the given number of cached tokens.
func (mc ModelCost) CalculateCachedCost(tokens int) float64 {
	rate := mc.CachedInputCostPerMillion
	if rate == 0 {
		rate = mc.InputCostPerMillion
	}
	return (float64(tokens) / 1_000_000.0) * rate
}

// Estimate returns the USD cost of one model call. Cached prompt tokens are
// part of PromptTokens and are billed at the cached rate. A nil usage costs
// nothing.
func (mc ModelCost) Estimate(usage *ai.Usage) float64 {
	if usage == nil {
		return 0
	}
	cached := min(usage.CachedTokens, usage.PromptTokens)
	return mc.CalculateInputCost(usage.PromptTokens-cached) +
		mc.CalculateCachedCost(cached) +
		mc.CalculateOutputCost(usage.CompletionTokens)
}

// String returns a formatted string representation of the model costs.
func (mc ModelCost) String() string {
	return fmt.Sprintf("Input: $%.6f/M, Output: $%.6f/M",
		mc.InputCostPerMillion, mc.OutputCostPerMillion)
}
