package inventory

// Stock pairs a caller-owned item slice with classifications derived once at
// construction, so names are not re-matched on every day.
//
// Stock assumes item names do not change after NewStock. The slice itself is
// shared with the caller, not copied.
type Stock struct {
	items   []*Item
	classes []Classification
	day     int
}

// NewStock classifies every item once.
func NewStock(items []*Item) *Stock {
	classes := make([]Classification, len(items))
	for i, item := range items {
		if item != nil {
			classes[i] = Classify(item.Name)
		}
	}
	return &Stock{items: items, classes: classes}
}

// Items returns the underlying slice.
func (s *Stock) Items() []*Item {
	return s.items
}

// Day returns the number of days advanced so far.
func (s *Stock) Day() int {
	return s.day
}

// AdvanceOneDay runs one day of updates using the cached classifications and
// returns the new day count.
func (s *Stock) AdvanceOneDay(e *Engine) int {
	for i, item := range s.items {
		if item == nil {
			continue
		}
		e.advance(i, item, s.classes[i])
	}
	s.day++
	return s.day
}

// Advance runs days updates, calling before (when non-nil) ahead of each one
// with the day number about to be simulated. An error from before stops the
// loop ahead of that day and is returned with the days completed so far.
// Non-positive days are a no-op.
func (s *Stock) Advance(e *Engine, days int, before func(day int) error) (int, error) {
	for n := 0; n < days; n++ {
		if before != nil {
			if err := before(s.day + 1); err != nil {
				return s.day, err
			}
		}
		s.AdvanceOneDay(e)
	}
	return s.day, nil
}
