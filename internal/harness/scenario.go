package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/fixture"
)

// DefaultRunID is used when a scenario does not set run_id.
const DefaultRunID = "test-run-default"

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is an optional fixed run ID. Defaults to DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Days is the number of days to advance. Must be at least 1.
	Days int `yaml:"days"`

	// Items are the starting items. Mutually exclusive with Fixture.
	Items []fixture.ItemSpec `yaml:"items,omitempty"`

	// Fixture is a path to a fixture file, relative to the scenario file.
	Fixture string `yaml:"fixture,omitempty"`

	// Assertions validate the trace and the final items.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the trace or the final items.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Index selects the item (final_item).
	Index *int `yaml:"index,omitempty"`

	// SellIn and Quality are the expected final values (final_item).
	// At least one must be set.
	SellIn  *int `yaml:"sell_in,omitempty"`
	Quality *int `yaml:"quality,omitempty"`

	// Count is the expected number of events (event_count).
	Count *int `yaml:"count,omitempty"`

	// Name restricts event_count to items with this exact name.
	Name string `yaml:"name,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalItem      = "final_item"
	AssertQualityBounds  = "quality_bounds"
	AssertLegendaryFixed = "legendary_fixed"
	AssertEventCount     = "event_count"
	AssertSellInStep     = "sell_in_step"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative fixture path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}
	if scenario.Fixture != "" {
		if _, err := os.Stat(scenario.Fixture); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: fixture file not found: %s", scenario.Fixture)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	switch {
	case len(s.Items) == 0 && s.Fixture == "":
		return fmt.Errorf("items or fixture is required")
	case len(s.Items) > 0 && s.Fixture != "":
		return fmt.Errorf("items and fixture are mutually exclusive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalItem:
		if a.Index == nil {
			return fmt.Errorf("assertions[%d]: index is required for final_item", index)
		}
		if *a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative for final_item", index)
		}
		if a.SellIn == nil && a.Quality == nil {
			return fmt.Errorf("assertions[%d]: sell_in or quality is required for final_item", index)
		}
	case AssertEventCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for event_count", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	case AssertQualityBounds, AssertLegendaryFixed, AssertSellInStep:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
