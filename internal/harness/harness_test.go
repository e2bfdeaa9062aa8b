package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/fixture"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/store"
)

func intPtr(v int) *int { return &v }

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Days:        1,
		Items:       []fixture.ItemSpec{{Name: "Elixir of the Mongoose", SellIn: 5, Quality: 7}},
		Assertions: []Assertion{
			{Type: AssertFinalItem, Index: intPtr(0), SellIn: intPtr(4), Quality: intPtr(6)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultRunID, result.RunID)

	require.Len(t, result.Trace, 1)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, 1, result.Trace[0].Day)
	assert.Equal(t, inventory.Normal, result.Trace[0].Category)

	assert.Equal(t, []store.SnapshotItem{{Index: 0, Name: "Elixir of the Mongoose", SellIn: 4, Quality: 6}}, result.Items)
}

func TestRun_FailingAssertion(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "Expects the wrong quality",
		Days:        1,
		Items:       []fixture.ItemSpec{{Name: "Aged Brie", SellIn: 5, Quality: 7}},
		Assertions: []Assertion{
			{Type: AssertFinalItem, Index: intPtr(0), Quality: intPtr(7)},
			{Type: AssertQualityBounds},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], "quality 8, want 7")
}

func TestRun_CustomRunID(t *testing.T) {
	scenario := &Scenario{
		Name:        "custom",
		Description: "Custom run id",
		RunID:       "my-run",
		Days:        2,
		Items:       []fixture.ItemSpec{{Name: "Sulfuras", SellIn: 3, Quality: 80}},
		Assertions:  []Assertion{{Type: AssertLegendaryFixed}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, "my-run", result.RunID)
	for _, rec := range result.Trace {
		assert.Equal(t, "my-run", rec.RunID)
		assert.True(t, rec.Skipped)
	}
}

func TestRun_InvalidItem(t *testing.T) {
	scenario := &Scenario{
		Name:        "blank",
		Description: "Blank item name",
		Days:        1,
		Items:       []fixture.ItemSpec{{Name: " ", SellIn: 1, Quality: 1}},
		Assertions:  []Assertion{{Type: AssertQualityBounds}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build items")
	assert.True(t, inventory.IsValidationError(err))
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/brie_ripens.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(scenario.Name, first)
	require.NoError(t, err)
	b, err := MarshalTrace(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestScenarioFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestGolden_BrieRipens(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/brie_ripens.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestGolden_ConjuredDecay(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/conjured_decay.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	require.NoError(t, AssertGolden(t, scenario.Name, result))
}
