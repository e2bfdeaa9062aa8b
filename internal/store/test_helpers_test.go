package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun registers a run or fails the test.
func createTestRun(t *testing.T, s *Store, id string) Run {
	t.Helper()
	r, err := s.WriteRun(context.Background(), id, "test-fixture")
	if err != nil {
		t.Fatalf("WriteRun(%q) failed: %v", id, err)
	}
	return r
}

// createTestEvent builds an event for a normal item losing one quality point.
func createTestEvent(runID string, seq int64, day, index int, name string) Event {
	return Event{
		RunID:      runID,
		Seq:        seq,
		Day:        day,
		Index:      index,
		Name:       name,
		Category:   "normal",
		OldSellIn:  5,
		NewSellIn:  4,
		OldQuality: 10,
		NewQuality: 9,
	}
}
