package cost

import (
	"math"
	"testing"

	"github.com/leofalp/campaignlens/providers/ai"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestModelCost_Calculate(t *testing.T) {
	mc := ModelCost{InputCostPerMillion: 2.50, OutputCostPerMillion: 10.00, CachedInputCostPerMillion: 1.25}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"input", mc.CalculateInputCost(1_000_000), 2.50},
		{"output", mc.CalculateOutputCost(500_000), 5.00},
		{"cached", mc.CalculateCachedCost(2_000_000), 2.50},
		{"zero tokens", mc.CalculateInputCost(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.want) {
				t.Errorf("got %f, want %f", tt.got, tt.want)
			}
		})
	}
}

func TestModelCost_CachedFallsBackToInputRate(t *testing.T) {
	mc := ModelCost{InputCostPerMillion: 1.0}
	if got := mc.CalculateCachedCost(1_000_000); !almostEqual(got, 1.0) {
		t.Errorf("got %f, want 1.0", got)
	}
}

func TestModelCost_Estimate(t *testing.T) {
	mc := ModelCost{InputCostPerMillion: 0.15, OutputCostPerMillion: 0.60, CachedInputCostPerMillion: 0.075}

	tests := []struct {
		name  string
		usage *ai.Usage
		want  float64
	}{
		{"nil usage", nil, 0},
		{
			name:  "no cache",
			usage: &ai.Usage{PromptTokens: 1000, CompletionTokens: 500},
			want:  1000*0.15/1e6 + 500*0.60/1e6,
		},
		{
			name:  "half cached",
			usage: &ai.Usage{PromptTokens: 1000, CompletionTokens: 0, CachedTokens: 500},
			want:  500*0.15/1e6 + 500*0.075/1e6,
		},
		{
			name:  "cached count above prompt is clamped",
			usage: &ai.Usage{PromptTokens: 100, CachedTokens: 400},
			want:  100 * 0.075 / 1e6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mc.Estimate(tt.usage); !almostEqual(got, tt.want) {
				t.Errorf("Estimate() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestFor(t *testing.T) {
	tests := []struct {
		model  string
		wantOK bool
		want   float64
	}{
		{"gpt-4o-mini", true, 0.15},
		{" GPT-4o-mini ", true, 0.15},
		{"gpt-4o-mini-2024-07-18", true, 0.15},
		{"gpt-4o-2024-08-06", true, 2.50},
		{"gpt-4.1-mini-2025-04-14", true, 0.40},
		{"llama-3-70b", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			mc, ok := For(tt.model)
			if ok != tt.wantOK {
				t.Fatalf("For(%q) ok = %v, want %v", tt.model, ok, tt.wantOK)
			}
			if mc.InputCostPerMillion != tt.want {
				t.Errorf("For(%q) input = %f, want %f", tt.model, mc.InputCostPerMillion, tt.want)
			}
		})
	}
}

func TestModelCost_IsZero(t *testing.T) {
	if !(ModelCost{}).IsZero() {
		t.Error("empty ModelCost should be zero")
	}
	if (ModelCost{OutputCostPerMillion: 1}).IsZero() {
		t.Error("priced ModelCost should not be zero")
	}
}
