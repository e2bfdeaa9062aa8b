package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoRuns is returned by LatestRun and LatestSnapshot on an empty log.
var ErrNoRuns = errors.New("no runs recorded")

// ReadRun retrieves a run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, fixture, days FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.Seq, &r.Fixture, &r.Days)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// LatestRun returns the run with the highest seq.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, fixture, days FROM runs ORDER BY seq DESC LIMIT 1
	`).Scan(&r.ID, &r.Seq, &r.Fixture, &r.Days)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// ListRuns returns every run ordered by seq.
// Returns an empty slice (not nil) on an empty log.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, seq, fixture, days FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq, &r.Fixture, &r.Days); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadEvents returns all events for a run in deterministic order.
// When name is non-empty only events for items with that exact name are returned.
func (s *Store) ReadEvents(ctx context.Context, runID, name string) ([]Event, error) {
	query := `
		SELECT id, run_id, seq, day, idx, name, category, enhanced,
		       old_sell_in, new_sell_in, old_quality, new_quality, skipped
		FROM item_events
		WHERE run_id = ?`
	args := []any{runID}
	if name != "" {
		query += ` AND name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var ev Event
	var enhanced, skipped int
	if err := rows.Scan(
		&ev.ID, &ev.RunID, &ev.Seq, &ev.Day, &ev.Index, &ev.Name, &ev.Category, &enhanced,
		&ev.OldSellIn, &ev.NewSellIn, &ev.OldQuality, &ev.NewQuality, &skipped,
	); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	ev.Enhanced = enhanced != 0
	ev.Skipped = skipped != 0
	return ev, nil
}

// ReadSnapshot returns the most recent snapshot of a run, ordered by index,
// together with the day it was taken. An empty slice means no snapshot.
func (s *Store) ReadSnapshot(ctx context.Context, runID string) (int, []SnapshotItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, idx, name, sell_in, quality
		FROM snapshots
		WHERE run_id = ?
		  AND day = (SELECT MAX(day) FROM snapshots WHERE run_id = ?)
		ORDER BY idx ASC
	`, runID, runID)
	if err != nil {
		return 0, nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	day := 0
	items := []SnapshotItem{}
	for rows.Next() {
		var item SnapshotItem
		if err := rows.Scan(&day, &item.Index, &item.Name, &item.SellIn, &item.Quality); err != nil {
			return 0, nil, fmt.Errorf("scan snapshot: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return day, items, nil
}

// LatestSnapshot returns the newest run that has a snapshot, with its items.
func (s *Store) LatestSnapshot(ctx context.Context) (Run, []SnapshotItem, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.seq, r.fixture, r.days
		FROM runs r
		WHERE EXISTS (SELECT 1 FROM snapshots sn WHERE sn.run_id = r.id)
		ORDER BY r.seq DESC
		LIMIT 1
	`).Scan(&r.ID, &r.Seq, &r.Fixture, &r.Days)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNoRuns
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("latest snapshot: %w", err)
	}

	_, items, err := s.ReadSnapshot(ctx, r.ID)
	if err != nil {
		return Run{}, nil, err
	}
	return r, items, nil
}
