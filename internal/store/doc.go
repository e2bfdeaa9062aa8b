// Package store provides SQLite-backed durable storage for inventory runs.
//
// The store is an append-only log with:
//   - Runs: one row per invocation of the day-advance loop
//   - Item events: one row per item per simulated day
//   - Snapshots: the item list as it stood at the end of a run
//
// # Ordering
//
// All ordering uses seq INTEGER (logical clock), never timestamps. Event
// queries include ORDER BY seq ASC, id ASC COLLATE BINARY so replays read
// back identically.
//
// # Identity
//
// Event IDs are content-addressed (canon.ID over the event fields), so writing
// the same event twice is a no-op via ON CONFLICT(id) DO NOTHING.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
