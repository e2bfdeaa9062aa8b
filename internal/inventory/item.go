package inventory

import (
	"fmt"
	"strings"
)

// Item is a single line of stock.
//
// Name is only ever read. SellIn and Quality are mutated in place by
// Engine.AdvanceOneDay.
type Item struct {
	Name    string
	SellIn  int
	Quality int
}

// NewItem constructs an item, rejecting blank names.
//
// SellIn and Quality are not range-checked: an out-of-range quality is
// corrected by the clamp on the next update, not here.
func NewItem(name string, sellIn, quality int) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError(ErrCodeEmptyName, "name", "item name must not be blank")
	}
	return &Item{Name: name, SellIn: sellIn, Quality: quality}, nil
}

// String renders the item as "<name>, <sellIn>, <quality>".
func (i *Item) String() string {
	return fmt.Sprintf("%s, %d, %d", i.Name, i.SellIn, i.Quality)
}
