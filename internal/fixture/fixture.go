package fixture

import (
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// ItemSpec describes one starting item.
type ItemSpec struct {
	Name    string `yaml:"name" json:"name"`
	SellIn  int    `yaml:"sell_in" json:"sell_in"`
	Quality int    `yaml:"quality" json:"quality"`
}

// Fixture is a named starting inventory.
type Fixture struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Days is the default number of days to advance. Zero means the caller
	// picks.
	Days int `yaml:"days,omitempty" json:"days,omitempty"`

	Items []ItemSpec `yaml:"items" json:"items"`
}

// Build constructs fresh items from the fixture.
// Each call returns new items, so one fixture can seed several runs.
func (f *Fixture) Build() ([]*inventory.Item, error) {
	items := make([]*inventory.Item, 0, len(f.Items))
	for i, spec := range f.Items {
		item, err := inventory.NewItem(spec.Name, spec.SellIn, spec.Quality)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// validate checks fields both loaders require.
func validate(f *Fixture) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Days < 0 {
		return fmt.Errorf("days must be non-negative, got %d", f.Days)
	}
	return nil
}
