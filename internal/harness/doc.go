// Package harness runs inventory scenarios as executable contract tests.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: brie_ripens
//	description: "Aged Brie gains quality, twice as fast after the sell date"
//	days: 3
//	items:
//	  - { name: Aged Brie, sell_in: 1, quality: 0 }
//	assertions:
//	  - type: final_item
//	    index: 0
//	    sell_in: -2
//	    quality: 5
//	  - type: quality_bounds
//
// Instead of inline items a scenario may name a fixture file, resolved
// relative to the scenario:
//
//	fixture: ../fixtures/shop.yaml
//
// # Assertion Types
//
//   - final_item: the item at index ends with the given sell_in and/or quality
//   - quality_bounds: every non-legendary update ends inside [0, 50]
//   - legendary_fixed: every legendary update keeps sell_in and ends at 80
//   - event_count: exactly count events, optionally only for items named name
//   - sell_in_step: every non-legendary update lowers sell_in by exactly one
//
// # Deterministic Testing
//
// Each scenario runs against a fresh in-memory store with a fixed run ID
// (scenario.run_id, or "test-run-default") and a logical clock starting at 1,
// so the trace is byte-identical across runs and can be compared with a
// golden file via RunWithGolden.
package harness
