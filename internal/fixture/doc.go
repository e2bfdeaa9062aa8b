// Package fixture loads starting inventories from YAML or CUE files.
//
// A fixture is input data, not configuration: it names a list of items and,
// optionally, how many days a run should advance by default.
//
//	name: demo
//	days: 1
//	items:
//	  - name: Aged Brie
//	    sell_in: 2
//	    quality: 0
//
// Items are constructed through inventory.NewItem by Fixture.Build, so a blank
// name is rejected when the fixture is loaded rather than during a run.
// Lint flags names that look like a category keyword but do not match one.
package fixture
