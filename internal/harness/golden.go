package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gildedrose/internal/canon"
	"github.com/roach88/gildedrose/internal/journal"
	"github.com/roach88/gildedrose/internal/store"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	RunID        string
	Trace        []journal.Record
	Final        []store.SnapshotItem
}

// CanonicalMap implements canon.Marshaler.
// Records drop their run ID; it appears once at the top level.
func (s *TraceSnapshot) CanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, rec := range s.Trace {
		rec.RunID = ""
		trace[i] = rec.CanonicalMap()
	}

	final := make([]any, len(s.Final))
	for i, item := range s.Final {
		final[i] = map[string]any{
			"index":   item.Index,
			"name":    item.Name,
			"sell_in": item.SellIn,
			"quality": item.Quality,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"run_id":        s.RunID,
		"trace":         trace,
		"final":         final,
	}
}

// MarshalTrace renders a result as the canonical JSON stored in golden files.
func MarshalTrace(scenarioName string, result *Result) ([]byte, error) {
	snapshot := &TraceSnapshot{
		ScenarioName: scenarioName,
		RunID:        result.RunID,
		Trace:        result.Trace,
		Final:        result.Items,
	}
	return canon.Marshal(snapshot)
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
