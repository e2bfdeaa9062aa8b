package harness

import (
	"github.com/roach88/gildedrose/internal/journal"
	"github.com/roach88/gildedrose/internal/store"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// RunID is the run the trace was recorded under.
	RunID string `json:"run_id"`

	// Trace holds every item event in order.
	Trace []journal.Record `json:"trace"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Items is the final snapshot, read back from the store.
	Items []store.SnapshotItem `json:"items"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []journal.Record{},
		Errors: []string{},
		Items:  []store.SnapshotItem{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
