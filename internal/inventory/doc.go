// Package inventory implements the daily update rules for shop stock.
//
// Each item carries a name, a sell-in countdown and a quality score. Once per
// simulated day the Engine walks the caller's items in order and applies the
// rule for the item's category:
//
//   - Legendary items ("sulfuras") are pinned at quality 80 and never age.
//   - Ripening items ("aged brie") gain quality, twice as fast past the date.
//   - Event tickets ("backstage passes") gain more as the event nears and drop
//     to zero once it has passed.
//   - Everything else is Normal and loses quality, twice as fast past the date.
//
// Names containing "conjured" change at double rate. Categories are derived
// from the name once, by case-insensitive substring match (see Classify).
//
// ORDERING:
//
// SellIn is decremented before the quality rule runs, so every threshold is
// evaluated against the post-decrement value. Quality is clamped to [0, 50]
// after the delta is applied; the clamp is a post-step, not a precondition.
//
// The update path never fails. Validation, when wanted, happens at
// construction time through NewItem.
package inventory
