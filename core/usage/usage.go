// Package usage owns the gateway's running token and cost ledger. The
// Tracker is the only writer path: Record after each successful parse, Reset
// on explicit request. All entry points are mutually exclusive, so concurrent
// records never lose updates and a reset never interleaves with a partial
// record.
package usage

import (
	"sync"

	"github.com/quillworks/aigate/core/cost"
	"github.com/quillworks/aigate/providers/ai"
)

// Snapshot is a point-in-time copy of the ledger, safe to retain.
type Snapshot struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Requests         int     `json:"requests"`

	// Cost is the cumulative estimated cost in USD. Only providers with
	// tabulated pricing contribute; see core/cost.
	Cost float64 `json:"cost"`
}

// Tracker accumulates usage for the life of one gateway instance.
type Tracker struct {
	mu      sync.Mutex
	current Snapshot
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Record adds one call's usage to the ledger and increments the request
// count. Cost is added only when pricing is known for (provider, model).
func (t *Tracker) Record(provider ai.Provider, model string, u ai.Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current.PromptTokens += u.PromptTokens
	t.current.CompletionTokens += u.CompletionTokens
	t.current.TotalTokens += u.TotalTokens
	t.current.Requests++

	if pricing, ok := cost.ForModel(provider, model); ok {
		t.current.Cost += pricing.Calculate(u.PromptTokens, u.CompletionTokens)
	}
}

// Reset zeroes all counters atomically with respect to Record.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = Snapshot{}
}

// Snapshot returns a copy of the current totals.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
