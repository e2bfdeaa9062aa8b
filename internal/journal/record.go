package journal

import "github.com/roach88/gildedrose/internal/inventory"

// Record is an inventory.Event stamped with run context.
type Record struct {
	RunID string
	Seq   int64
	Day   int
	inventory.Event
}

// CanonicalMap returns the record as a map for canon.Marshal.
// Field names match the persisted store columns.
func (r Record) CanonicalMap() map[string]any {
	m := map[string]any{
		"seq":         r.Seq,
		"day":         r.Day,
		"index":       r.Index,
		"name":        r.Name,
		"category":    r.Category.String(),
		"enhanced":    r.Enhanced,
		"old_sell_in": r.OldSellIn,
		"new_sell_in": r.NewSellIn,
		"old_quality": r.OldQuality,
		"new_quality": r.NewQuality,
		"skipped":     r.Skipped,
	}
	if r.RunID != "" {
		m["run_id"] = r.RunID
	}
	return m
}

// RecordSink receives stamped records.
type RecordSink interface {
	Write(Record)
}

// Stamper is an inventory.Observer that stamps each event and forwards it.
//
// The caller advances the day with SetDay before each AdvanceOneDay. Not safe
// for concurrent use; the engine calls observers from a single goroutine.
type Stamper struct {
	runID string
	clock *Clock
	day   int
	sinks []RecordSink
}

// NewStamper creates a stamper for a run. A nil clock starts a fresh one.
func NewStamper(runID string, clock *Clock, sinks ...RecordSink) *Stamper {
	if clock == nil {
		clock = NewClock()
	}
	return &Stamper{runID: runID, clock: clock, sinks: sinks}
}

// SetDay sets the day stamped onto subsequent records.
func (s *Stamper) SetDay(day int) {
	s.day = day
}

// Observe implements inventory.Observer.
func (s *Stamper) Observe(ev inventory.Event) {
	rec := Record{
		RunID: s.runID,
		Seq:   s.clock.Next(),
		Day:   s.day,
		Event: ev,
	}
	for _, sink := range s.sinks {
		sink.Write(rec)
	}
}

// Recorder keeps every record in memory, in arrival order.
type Recorder struct {
	records []Record
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{records: []Record{}}
}

// Write implements RecordSink.
func (r *Recorder) Write(rec Record) {
	r.records = append(r.records, rec)
}

// Records returns the recorded records. The slice is never nil.
func (r *Recorder) Records() []Record {
	return r.records
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	return len(r.records)
}
