// Package journal collects item update events emitted by inventory.Engine.
//
// The engine only knows the inventory.Observer interface. This package
// provides the observers a caller wires in:
//
//   - TextSink: append-only human-readable log, one line per item update
//   - SlogSink: structured log records through log/slog
//   - Stamper: stamps events with a logical seq, day and run ID and forwards
//     them as Records to RecordSinks
//   - Recorder: in-memory RecordSink for tests and JSON output
//   - StoreSink: RecordSink that appends to the SQLite event log
//
// Sinks that can fail remember their first error and expose it through Err,
// since the update operation itself has no error path.
package journal
