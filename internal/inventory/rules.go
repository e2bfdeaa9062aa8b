package inventory

// Quality bounds.
const (
	MinQuality       = 0
	MaxQuality       = 50
	LegendaryQuality = 80
)

// Event-ticket thresholds on the post-decrement sell-in.
// The ranges are half-open: [0,5) gives +3, [5,10) gives +2, [10,∞) gives +1.
const (
	ticketCloseDays = 5
	ticketNearDays  = 10
)

// rule computes the new quality for an aged, non-legendary item.
// sellIn is the already-decremented value.
func rule(c Classification, sellIn, quality int) int {
	switch c.Category {
	case Ripening:
		return quality + scale(ripeningDelta(sellIn), c.Enhanced)
	case EventTicket:
		if sellIn < 0 {
			// Past the event. A direct assignment, so never doubled.
			return 0
		}
		return quality + scale(ticketDelta(sellIn), c.Enhanced)
	default:
		return quality + scale(normalDelta(sellIn), c.Enhanced)
	}
}

func ripeningDelta(sellIn int) int {
	if sellIn < 0 {
		return 2
	}
	return 1
}

func ticketDelta(sellIn int) int {
	switch {
	case sellIn < ticketCloseDays:
		return 3
	case sellIn < ticketNearDays:
		return 2
	default:
		return 1
	}
}

func normalDelta(sellIn int) int {
	if sellIn < 0 {
		return -2
	}
	return -1
}

func scale(delta int, enhanced bool) int {
	if enhanced {
		return delta * 2
	}
	return delta
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
