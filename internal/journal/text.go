package journal

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/gildedrose/internal/inventory"
)

// TextSink writes one human-readable line per event to an append-only writer:
//
//	Aged Brie, sell_in 2 → 1, quality 0 → 1
//	Skipping update for Sulfuras (legendary), sell_in 0, quality 80
//
// The first write error is kept and later events are dropped.
type TextSink struct {
	w   io.Writer
	c   io.Closer
	err error
}

// NewTextSink writes to w. The caller keeps ownership of w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// OpenTextSink opens path for appending, creating it if needed.
// Close releases the file.
func OpenTextSink(path string) (*TextSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open text log: %w", err)
	}
	return &TextSink{w: f, c: f}, nil
}

// Observe implements inventory.Observer.
func (s *TextSink) Observe(ev inventory.Event) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, FormatLine(ev)+"\n")
}

// Err returns the first write error, if any.
func (s *TextSink) Err() error {
	return s.err
}

// Close closes the underlying file when the sink opened it.
func (s *TextSink) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// FormatLine renders an event the way TextSink writes it, without newline.
func FormatLine(ev inventory.Event) string {
	if ev.Skipped {
		return fmt.Sprintf("Skipping update for %s (%s), sell_in %d, quality %d",
			ev.Name, ev.Category, ev.OldSellIn, ev.OldQuality)
	}
	return fmt.Sprintf("%s, sell_in %d → %d, quality %d → %d",
		ev.Name, ev.OldSellIn, ev.NewSellIn, ev.OldQuality, ev.NewQuality)
}
