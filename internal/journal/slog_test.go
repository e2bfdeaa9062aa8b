package journal

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
)

func TestSlogSink_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sink := NewSlogSink(logger)

	items := []*inventory.Item{
		{Name: "Backstage passes", SellIn: 10, Quality: 20},
		{Name: "Sulfuras", SellIn: 0, Quality: 80},
	}
	inventory.New(inventory.WithObserver(sink)).AdvanceOneDay(items)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "legendary skip logs at debug and is filtered")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "item updated", rec["msg"])
	assert.Equal(t, "Backstage passes", rec["name"])
	assert.Equal(t, "event_ticket", rec["category"])
	assert.Equal(t, float64(9), rec["new_sell_in"])
	assert.Equal(t, float64(22), rec["new_quality"])
}

func TestSlogSink_DebugIncludesSkips(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewSlogSink(logger)

	sink.Observe(inventory.Event{Name: "Sulfuras", Category: inventory.Legendary, Skipped: true, OldQuality: 80, NewQuality: 80})
	assert.Contains(t, buf.String(), `msg="item skipped"`)
	assert.Contains(t, buf.String(), "category=legendary")
}

func TestNewSlogSink_NilUsesDefault(t *testing.T) {
	sink := NewSlogSink(nil)
	assert.Equal(t, slog.Default(), sink.logger)
}
