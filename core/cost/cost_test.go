package cost

import (
	"testing"

	"github.com/quillworks/aigate/providers/ai"
)

func TestCalculate(t *testing.T) {
	mc := ModelCost{InputCostPerMillion: 2.50, OutputCostPerMillion: 10.00}

	got := mc.Calculate(1_000_000, 500_000)
	want := 2.50 + 5.00
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestForModelPrefixMatching(t *testing.T) {
	// Dated snapshots should match their family, and the longest prefix wins:
	// gpt-4o-mini-2024-07-18 must hit gpt-4o-mini, not gpt-4o.
	mini, ok := ForModel(ai.ProviderOpenAI, "gpt-4o-mini-2024-07-18")
	if !ok {
		t.Fatal("expected pricing for openai model")
	}
	full, _ := ForModel(ai.ProviderOpenAI, "gpt-4o-2024-08-06")
	if mini.InputCostPerMillion >= full.InputCostPerMillion {
		t.Errorf("gpt-4o-mini (%v) should be cheaper than gpt-4o (%v)",
			mini.InputCostPerMillion, full.InputCostPerMillion)
	}
}

func TestForModelUnknownOpenAIModelGetsDefault(t *testing.T) {
	mc, ok := ForModel(ai.ProviderOpenAI, "some-future-model")
	if !ok {
		t.Fatal("expected fallback pricing for unknown openai model")
	}
	if mc.InputCostPerMillion <= 0 {
		t.Errorf("expected non-zero fallback rate, got %+v", mc)
	}
}

func TestForModelNonOpenAIHasNoPricing(t *testing.T) {
	for _, p := range []ai.Provider{ai.ProviderAnthropic, ai.ProviderGoogle, ai.ProviderLocal, ai.ProviderCustom} {
		if _, ok := ForModel(p, "any-model"); ok {
			t.Errorf("expected no pricing for %s", p)
		}
	}
}
