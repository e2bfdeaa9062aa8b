package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brieScenario = `name: brie_ripens
description: Aged Brie gains quality, twice as fast after the sell date
days: 3
items:
  - {name: Aged Brie, sell_in: 1, quality: 0}
assertions:
  - type: final_item
    index: 0
    sell_in: -2
    quality: 5
  - type: quality_bounds
`

const wrongScenario = `name: wrong_quality
description: Expects a quality the engine never produces
days: 1
items:
  - {name: Elixir of the Mongoose, sell_in: 5, quality: 7}
assertions:
  - type: final_item
    index: 0
    sell_in: 4
    quality: 99
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTest_Pass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"brie_ripens.yaml": brieScenario})

	stdout, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ brie_ripens\n")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTest_Failure(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"brie_ripens.yaml":   brieScenario,
		"wrong_quality.yaml": wrongScenario,
	})

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ wrong_quality")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
	assert.NotContains(t, stdout, "All scenarios passed")
}

func TestTest_UpdateThenCompare(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"brie_ripens.yaml": brieScenario})
	goldenPath := filepath.Join(dir, "golden", "brie_ripens.golden")

	stdout, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ brie_ripens (golden updated)")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"brie_ripens"`)

	// golden/ is not scanned for scenarios
	stdout, _, err = execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 total")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"trace":[]}`), 0o644))
	stdout, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "trace does not match golden file")
}

func TestTest_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"brie_ripens.yaml":   brieScenario,
		"wrong_quality.yaml": wrongScenario,
	})

	stdout, _, err := execute(t, "test", dir, "--filter", "brie*")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.NotContains(t, stdout, "wrong_quality")
}

func TestTest_InvalidScenario(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: broken\n"})

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestTest_JSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"brie_ripens.yaml":   brieScenario,
		"wrong_quality.yaml": wrongScenario,
	})

	stdout, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestTest_NoScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", stdout)
}

func TestTest_MissingDirectory(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTest_RepositoryScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", "../harness/testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ All scenarios passed")
}
