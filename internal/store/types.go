package store

import "github.com/roach88/gildedrose/internal/canon"

// Run is one invocation of the day-advance loop.
type Run struct {
	ID string `json:"id"`
	// Seq orders runs within a database, starting at 1.
	Seq     int64  `json:"seq"`
	Fixture string `json:"fixture"`
	Days    int    `json:"days"`
}

// Event is a persisted item update.
type Event struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	Seq        int64  `json:"seq"`
	Day        int    `json:"day"`
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Enhanced   bool   `json:"enhanced"`
	OldSellIn  int    `json:"old_sell_in"`
	NewSellIn  int    `json:"new_sell_in"`
	OldQuality int    `json:"old_quality"`
	NewQuality int    `json:"new_quality"`
	Skipped    bool   `json:"skipped"`
}

// SnapshotItem is one item in an end-of-run snapshot.
type SnapshotItem struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	SellIn  int    `json:"sell_in"`
	Quality int    `json:"quality"`
}

// EventID computes the content-addressed ID of an event.
// The ID field itself is not part of the hash.
func EventID(ev Event) (string, error) {
	return canon.ID(canon.DomainEvent, map[string]any{
		"run_id":      ev.RunID,
		"seq":         ev.Seq,
		"day":         ev.Day,
		"index":       ev.Index,
		"name":        ev.Name,
		"category":    ev.Category,
		"enhanced":    ev.Enhanced,
		"old_sell_in": ev.OldSellIn,
		"new_sell_in": ev.NewSellIn,
		"old_quality": ev.OldQuality,
		"new_quality": ev.NewQuality,
		"skipped":     ev.Skipped,
	})
}
