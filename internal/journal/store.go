package journal

import (
	"context"

	"github.com/roach88/gildedrose/internal/store"
)

// StoreSink appends records to the SQLite event log.
//
// The first write error is kept and later records are dropped, so a failing
// database cannot interrupt the day being simulated.
type StoreSink struct {
	ctx   context.Context
	store *store.Store
	err   error
}

// NewStoreSink writes through st using ctx for every statement.
func NewStoreSink(ctx context.Context, st *store.Store) *StoreSink {
	return &StoreSink{ctx: ctx, store: st}
}

// Write implements RecordSink.
func (s *StoreSink) Write(rec Record) {
	if s.err != nil {
		return
	}
	s.err = s.store.WriteEvent(s.ctx, ToStoreEvent(rec))
}

// Err returns the first write error, if any.
func (s *StoreSink) Err() error {
	return s.err
}

// ToStoreEvent converts a record to its persisted form.
func ToStoreEvent(rec Record) store.Event {
	return store.Event{
		RunID:      rec.RunID,
		Seq:        rec.Seq,
		Day:        rec.Day,
		Index:      rec.Index,
		Name:       rec.Name,
		Category:   rec.Category.String(),
		Enhanced:   rec.Enhanced,
		OldSellIn:  rec.OldSellIn,
		NewSellIn:  rec.NewSellIn,
		OldQuality: rec.OldQuality,
		NewQuality: rec.NewQuality,
		Skipped:    rec.Skipped,
	}
}
