package store

import (
	"context"
	"fmt"
)

// WriteRun registers a new run and assigns it the next run seq.
func (s *Store) WriteRun(ctx context.Context, id, fixture string) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, fixture, days)
		VALUES (?, ?, ?, 0)
	`, id, seq, fixture); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}

	return Run{ID: id, Seq: seq, Fixture: fixture}, nil
}

// FinishRun records how many days a run advanced.
func (s *Store) FinishRun(ctx context.Context, id string, days int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET days = ? WHERE id = ?`, days, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: unknown run %q", id)
	}
	return nil
}

// WriteEvent appends an item event. The ID is computed when empty.
//
// Uses ON CONFLICT(id) DO NOTHING - rewriting an identical event is a no-op.
// A different event reusing (run_id, seq) is still an error.
func (s *Store) WriteEvent(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		id, err := EventID(ev)
		if err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		ev.ID = id
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_events
		(id, run_id, seq, day, idx, name, category, enhanced,
		 old_sell_in, new_sell_in, old_quality, new_quality, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.RunID,
		ev.Seq,
		ev.Day,
		ev.Index,
		ev.Name,
		ev.Category,
		boolToInt(ev.Enhanced),
		ev.OldSellIn,
		ev.NewSellIn,
		ev.OldQuality,
		ev.NewQuality,
		boolToInt(ev.Skipped),
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// WriteSnapshot stores the item list for a run as of the given day,
// replacing any earlier snapshot for the same day.
func (s *Store) WriteSnapshot(ctx context.Context, runID string, day int, items []SnapshotItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE run_id = ? AND day = ?`, runID, day); err != nil {
		return fmt.Errorf("write snapshot: clear: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (run_id, day, idx, name, sell_in, quality)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, day, item.Index, item.Name, item.SellIn, item.Quality); err != nil {
			return fmt.Errorf("write snapshot: item %d: %w", item.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write snapshot: commit: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
