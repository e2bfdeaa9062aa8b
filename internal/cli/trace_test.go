package cli

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/store"
)

// seedDatabase records the shop fixture under run IDs run-1 and run-2.
func seedDatabase(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "inventory.db")

	_, _, run := runCommand("text", "run-1", "run-2")
	require.NoError(t, run("testdata/fixtures/shop.yaml", "--db", dbPath))
	require.NoError(t, run("testdata/fixtures/typo.yaml", "--db", dbPath))
	return dbPath
}

func TestTrace_MissingDatabaseFlag(t *testing.T) {
	_, _, err := execute(t, "trace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestTrace_NonExistentDatabase(t *testing.T) {
	_, _, err := execute(t, "trace", "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestTrace_RefusesForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (body TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = execute(t, "trace", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrNotInitialized)

	db, err = sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()
	var version int
	require.NoError(t, db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 0, version, "trace must not initialize the file")
}

func TestTrace_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", stdout)
}

func TestTrace_LatestRun(t *testing.T) {
	dbPath := seedDatabase(t)

	stdout, _, err := execute(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t,
		"Run: run-2 (fixture typo, 1 days)\n"+
			"Day 1:\n"+
			"  [1] Aged Bree, sell_in 2 → 1, quality 0 → 0\n"+
			"\n1 events (1 updated, 0 skipped)\n",
		stdout)
}

func TestTrace_RunAndItemFilter(t *testing.T) {
	dbPath := seedDatabase(t)

	stdout, _, err := execute(t, "trace", "--db", dbPath, "--run", "run-1", "--item", "Aged Brie")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Run: run-1 (fixture shop, 2 days)\n")
	assert.Contains(t, stdout, "Day 1:\n  [2] Aged Brie, sell_in 2 → 1, quality 0 → 1\n")
	assert.Contains(t, stdout, "Day 2:\n  [8] Aged Brie, sell_in 1 → 0, quality 1 → 2\n")
	assert.NotContains(t, stdout, "Dexterity")
	assert.Contains(t, stdout, "2 events (2 updated, 0 skipped)")
}

func TestTrace_SkippedLegendary(t *testing.T) {
	dbPath := seedDatabase(t)

	stdout, _, err := execute(t, "trace", "--db", dbPath, "--run", "run-1", "--item", "Sulfuras, Hand of Ragnaros")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[4] Skipping update for Sulfuras, Hand of Ragnaros (legendary), sell_in 0, quality 80")
	assert.Contains(t, stdout, "2 events (0 updated, 2 skipped)")
}

func TestTrace_UnknownRun(t *testing.T) {
	dbPath := seedDatabase(t)

	_, _, err := execute(t, "trace", "--db", dbPath, "--run", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found: nope")
}

func TestTrace_JSON(t *testing.T) {
	dbPath := seedDatabase(t)

	stdout, _, err := execute(t, "trace", "--db", dbPath, "--run", "run-1", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.Data.Run.ID)
	assert.Len(t, resp.Data.Events, 12)
	assert.Equal(t, TraceStats{TotalEvents: 12, Updated: 10, Skipped: 2, Days: 2}, resp.Data.Stats)

	for i, ev := range resp.Data.Events {
		assert.Equal(t, int64(i+1), ev.Seq)
		assert.Len(t, ev.ID, 64, "content-addressed sha256 hex")
	}
}

func TestTrace_List(t *testing.T) {
	dbPath := seedDatabase(t)

	stdout, _, err := execute(t, "trace", "--db", dbPath, "--list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		"1\trun-1\tshop\t2 days",
		"2\trun-2\ttypo\t1 days",
	}, lines)
}
