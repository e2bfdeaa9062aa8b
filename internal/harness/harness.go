package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gildedrose/internal/fixture"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/runner"
	"github.com/roach88/gildedrose/internal/store"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database:
// 1. Build the starting items (inline or from the fixture file)
// 2. Advance them through runner.Run, persisting events and a snapshot
// 3. Read the final snapshot back from the store
// 4. Evaluate assertions against the trace and the snapshot
//
// An error means the scenario could not run; assertion failures are
// reported through Result.Pass and Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	items, label, err := buildItems(scenario)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}

	out, err := runner.Run(ctx, runner.Config{
		RunID:   runID,
		Fixture: label,
		Items:   items,
		Days:    scenario.Days,
		Store:   st,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run scenario: %w", err)
	}

	_, snapshot, err := st.ReadSnapshot(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	result := NewResult()
	result.RunID = runID
	result.Trace = out.Records
	result.Items = snapshot

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func buildItems(scenario *Scenario) ([]*inventory.Item, string, error) {
	f := &fixture.Fixture{Name: scenario.Name, Items: scenario.Items}
	label := "scenario:" + scenario.Name
	if scenario.Fixture != "" {
		loaded, err := fixture.Load(scenario.Fixture)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load fixture: %w", err)
		}
		f = loaded
		label = loaded.Name
	}

	items, err := f.Build()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build items: %w", err)
	}
	return items, label, nil
}
