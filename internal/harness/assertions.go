package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/journal"
)

// AssertionError is returned when an assertion fails.
// It includes the offending record when there is one.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Record   *journal.Record // First record that broke the assertion
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	if e.Record != nil {
		fmt.Fprintf(&buf, "\n  At: day %d seq %d: %s", e.Record.Day, e.Record.Seq, journal.FormatLine(e.Record.Event))
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns failure messages.
// An empty slice means all assertions passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	errs := []string{}
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertFinalItem:
		return assertFinalItem(result, a)
	case AssertQualityBounds:
		return assertQualityBounds(result.Trace)
	case AssertLegendaryFixed:
		return assertLegendaryFixed(result.Trace)
	case AssertEventCount:
		return assertEventCount(result.Trace, a)
	case AssertSellInStep:
		return assertSellInStep(result.Trace)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertFinalItem checks the snapshot row at the given slice index.
func assertFinalItem(result *Result, a Assertion) error {
	index := *a.Index
	for _, item := range result.Items {
		if item.Index != index {
			continue
		}

		var mismatches []string
		if a.SellIn != nil && item.SellIn != *a.SellIn {
			mismatches = append(mismatches, fmt.Sprintf("sell_in %d, want %d", item.SellIn, *a.SellIn))
		}
		if a.Quality != nil && item.Quality != *a.Quality {
			mismatches = append(mismatches, fmt.Sprintf("quality %d, want %d", item.Quality, *a.Quality))
		}
		if len(mismatches) == 0 {
			return nil
		}
		return &AssertionError{
			Type:     AssertFinalItem,
			Expected: describeFinal(index, a),
			Actual:   fmt.Sprintf("%q has %s", item.Name, strings.Join(mismatches, ", ")),
		}
	}

	return &AssertionError{
		Type:     AssertFinalItem,
		Expected: describeFinal(index, a),
		Actual:   fmt.Sprintf("no item at index %d (%d items)", index, len(result.Items)),
	}
}

func describeFinal(index int, a Assertion) string {
	parts := []string{fmt.Sprintf("item %d", index)}
	if a.SellIn != nil {
		parts = append(parts, fmt.Sprintf("sell_in %d", *a.SellIn))
	}
	if a.Quality != nil {
		parts = append(parts, fmt.Sprintf("quality %d", *a.Quality))
	}
	return strings.Join(parts, " ")
}

func assertQualityBounds(trace []journal.Record) error {
	for i := range trace {
		rec := &trace[i]
		if rec.Skipped {
			continue
		}
		if rec.NewQuality < inventory.MinQuality || rec.NewQuality > inventory.MaxQuality {
			return &AssertionError{
				Type:     AssertQualityBounds,
				Expected: fmt.Sprintf("quality within [%d, %d]", inventory.MinQuality, inventory.MaxQuality),
				Actual:   fmt.Sprintf("quality %d", rec.NewQuality),
				Record:   rec,
			}
		}
	}
	return nil
}

func assertLegendaryFixed(trace []journal.Record) error {
	for i := range trace {
		rec := &trace[i]
		if rec.Category != inventory.Legendary {
			continue
		}
		if rec.NewSellIn != rec.OldSellIn || rec.NewQuality != inventory.LegendaryQuality {
			return &AssertionError{
				Type:     AssertLegendaryFixed,
				Expected: fmt.Sprintf("sell_in unchanged and quality %d", inventory.LegendaryQuality),
				Actual:   fmt.Sprintf("sell_in %d → %d, quality %d", rec.OldSellIn, rec.NewSellIn, rec.NewQuality),
				Record:   rec,
			}
		}
	}
	return nil
}

func assertEventCount(trace []journal.Record, a Assertion) error {
	count := 0
	for _, rec := range trace {
		if a.Name == "" || rec.Name == a.Name {
			count++
		}
	}
	if count == *a.Count {
		return nil
	}

	subject := "events"
	if a.Name != "" {
		subject = fmt.Sprintf("events for %q", a.Name)
	}
	return &AssertionError{
		Type:     AssertEventCount,
		Expected: fmt.Sprintf("%d %s", *a.Count, subject),
		Actual:   fmt.Sprintf("%d %s", count, subject),
	}
}

func assertSellInStep(trace []journal.Record) error {
	for i := range trace {
		rec := &trace[i]
		if rec.Category == inventory.Legendary {
			continue
		}
		if rec.NewSellIn != rec.OldSellIn-1 {
			return &AssertionError{
				Type:     AssertSellInStep,
				Expected: fmt.Sprintf("sell_in %d → %d", rec.OldSellIn, rec.OldSellIn-1),
				Actual:   fmt.Sprintf("sell_in %d → %d", rec.OldSellIn, rec.NewSellIn),
				Record:   rec,
			}
		}
	}
	return nil
}
