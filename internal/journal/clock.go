package journal

import "sync/atomic"

// Clock is a monotonic logical clock for event ordering.
//
// Every Record gets a strictly increasing Seq from Next. Wall-clock time is
// never used for ordering, so replays produce identical sequences.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}
