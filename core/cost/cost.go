// Package cost carries the per-token pricing used by the usage ledger. Only
// OpenAI pricing is tabulated; for every other provider cost accounting is
// intentionally skipped rather than guessed, so ledger totals stay
// conservative.
package cost

import (
	"strings"

	"github.com/quillworks/aigate/providers/ai"
)

// ModelCost is the pricing structure for a model, expressed in USD per
// million tokens.
type ModelCost struct {
	// InputCostPerMillion is the cost in USD per 1 million prompt tokens.
	InputCostPerMillion float64 `json:"input_cost_per_million"`

	// OutputCostPerMillion is the cost in USD per 1 million completion tokens.
	OutputCostPerMillion float64 `json:"output_cost_per_million"`
}

// CalculateInputCost returns the cost for the given number of prompt tokens.
func (mc ModelCost) CalculateInputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.InputCostPerMillion
}

// CalculateOutputCost returns the cost for the given number of completion tokens.
func (mc ModelCost) CalculateOutputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.OutputCostPerMillion
}

// Calculate returns the total cost for a call.
func (mc ModelCost) Calculate(inputTokens, outputTokens int) float64 {
	return mc.CalculateInputCost(inputTokens) + mc.CalculateOutputCost(outputTokens)
}

// openAIPricing maps model prefixes to rates. Matching is by prefix so dated
// snapshots (gpt-4o-2024-08-06) hit their family's rate.
var openAIPricing = map[string]ModelCost{
	"gpt-4o-mini":            {InputCostPerMillion: 0.15, OutputCostPerMillion: 0.60},
	"gpt-4o":                 {InputCostPerMillion: 2.50, OutputCostPerMillion: 10.00},
	"gpt-4-turbo":            {InputCostPerMillion: 10.00, OutputCostPerMillion: 30.00},
	"gpt-3.5-turbo":          {InputCostPerMillion: 0.50, OutputCostPerMillion: 1.50},
	"text-embedding-3-small": {InputCostPerMillion: 0.02},
	"text-embedding-3-large": {InputCostPerMillion: 0.13},
}

// defaultOpenAI is applied to OpenAI models missing from the table.
var defaultOpenAI = ModelCost{InputCostPerMillion: 0.50, OutputCostPerMillion: 1.50}

// ForModel returns the pricing for (provider, model). The second return is
// false when the provider has no known pricing, in which case the ledger
// leaves cost untouched.
func ForModel(provider ai.Provider, model string) (ModelCost, bool) {
	if provider != ai.ProviderOpenAI {
		return ModelCost{}, false
	}

	best := ""
	for prefix := range openAIPricing {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		return openAIPricing[best], true
	}
	return defaultOpenAI, true
}
