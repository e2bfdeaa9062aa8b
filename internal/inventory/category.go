package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is the closed set of update policies.
// The zero value is Normal.
type Category int

const (
	Normal Category = iota
	Legendary
	Ripening
	EventTicket
)

// Name patterns, matched case-insensitively as substrings.
const (
	LegendaryKeyword   = "sulfuras"
	RipeningKeyword    = "aged brie"
	EventTicketKeyword = "backstage passes"
	EnhancedKeyword    = "conjured"
)

// Keywords lists every name pattern the classifier looks for, in precedence
// order with the enhanced-rate modifier last.
var Keywords = []string{LegendaryKeyword, RipeningKeyword, EventTicketKeyword, EnhancedKeyword}

// String returns the lower_snake name of the category.
func (c Category) String() string {
	switch c {
	case Legendary:
		return "legendary"
	case Ripening:
		return "ripening"
	case EventTicket:
		return "event_ticket"
	default:
		return "normal"
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "normal":
		return Normal, true
	case "legendary":
		return Legendary, true
	case "ripening":
		return Ripening, true
	case "event_ticket":
		return EventTicket, true
	default:
		return Normal, false
	}
}

// Classification is the result of classifying an item name.
type Classification struct {
	Category Category
	// Enhanced doubles whatever delta the category would apply.
	Enhanced bool
}

// Classify maps a name to its category and enhanced-rate flag.
//
// Each pattern is tested independently. When a name matches more than one
// category pattern, Legendary wins over Ripening, which wins over EventTicket.
// The enhanced-rate modifier combines with any category.
func Classify(name string) Classification {
	folded := Fold(name)

	var c Classification
	switch {
	case strings.Contains(folded, LegendaryKeyword):
		c.Category = Legendary
	case strings.Contains(folded, RipeningKeyword):
		c.Category = Ripening
	case strings.Contains(folded, EventTicketKeyword):
		c.Category = EventTicket
	}
	c.Enhanced = strings.Contains(folded, EnhancedKeyword)
	return c
}

// Fold returns the Unicode case-folded form of s used for pattern matching.
func Fold(s string) string {
	// A Caser holds state, so one is built per call.
	return cases.Fold().String(s)
}
