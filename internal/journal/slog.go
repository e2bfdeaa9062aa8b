package journal

import (
	"context"
	"log/slog"

	"github.com/roach88/gildedrose/internal/inventory"
)

// SlogSink logs each event as a structured record.
// Updates log at Info, legendary skips at Debug.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink logs through logger, or slog.Default() when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Observe implements inventory.Observer.
func (s *SlogSink) Observe(ev inventory.Event) {
	level := slog.LevelInfo
	msg := "item updated"
	if ev.Skipped {
		level = slog.LevelDebug
		msg = "item skipped"
	}
	s.logger.LogAttrs(context.Background(), level, msg,
		slog.Int("index", ev.Index),
		slog.String("name", ev.Name),
		slog.String("category", ev.Category.String()),
		slog.Bool("enhanced", ev.Enhanced),
		slog.Int("old_sell_in", ev.OldSellIn),
		slog.Int("new_sell_in", ev.NewSellIn),
		slog.Int("old_quality", ev.OldQuality),
		slog.Int("new_quality", ev.NewQuality),
	)
}
