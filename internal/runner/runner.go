// Package runner drives an inventory through a number of days, recording
// every item event and, when a store is configured, persisting the run.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/journal"
	"github.com/roach88/gildedrose/internal/logging"
	"github.com/roach88/gildedrose/internal/store"
)

// Config describes one run.
type Config struct {
	// RunID identifies the run. When empty one is taken from IDs.
	RunID string

	// IDs generates a run ID when RunID is empty. Defaults to UUIDv7.
	IDs journal.RunIDGenerator

	// Fixture labels where the starting items came from.
	Fixture string

	// Items is advanced in place.
	Items []*inventory.Item

	// Days is the number of days to advance. Zero only records the run.
	Days int

	// Store, when set, receives the run, its events and a final snapshot.
	Store *store.Store

	// Observers receive every event after it has been recorded.
	Observers []inventory.Observer

	Logger *slog.Logger

	// Tracer records a span per run. Defaults to the global provider's
	// tracer, which is a no-op unless one is installed.
	Tracer trace.Tracer
}

const tracerName = "gildedrose/runner"

// Outcome is the result of a completed run.
type Outcome struct {
	RunID   string
	Days    int
	Records []journal.Record
	Items   []*inventory.Item
}

// Snapshot returns the final items in their persisted form.
func (o *Outcome) Snapshot() []store.SnapshotItem {
	return SnapshotOf(o.Items)
}

// Run advances cfg.Items by cfg.Days days.
//
// The context is checked between days; a cancelled run returns the context
// error and leaves the items as of the last completed day. With a store, the
// completed days are still snapshotted and the run finished.
func Run(ctx context.Context, cfg Config) (out *Outcome, err error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "runner.run",
		trace.WithAttributes(
			attribute.String("run.fixture", cfg.Fixture),
			attribute.Int("run.items", len(cfg.Items)),
			attribute.Int("run.days", cfg.Days),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("run.events", len(out.Records)))
		}
		span.End()
	}()

	if cfg.Days < 0 {
		return nil, fmt.Errorf("days must be non-negative, got %d", cfg.Days)
	}

	runID := cfg.RunID
	if runID == "" {
		ids := cfg.IDs
		if ids == nil {
			ids = journal.UUIDv7Generator{}
		}
		runID = ids.Generate()
	}
	logger := logging.WithRun(cfg.Logger, runID)
	span.SetAttributes(attribute.String("run.id", runID))

	recorder := journal.NewRecorder()
	sinks := []journal.RecordSink{recorder}

	var storeSink *journal.StoreSink
	if cfg.Store != nil {
		if _, err := cfg.Store.WriteRun(ctx, runID, cfg.Fixture); err != nil {
			return nil, err
		}
		// A day that has started is always recorded in full.
		storeSink = journal.NewStoreSink(context.WithoutCancel(ctx), cfg.Store)
		sinks = append(sinks, storeSink)
	}

	stamper := journal.NewStamper(runID, nil, sinks...)
	opts := []inventory.Option{
		inventory.WithObserver(stamper),
		inventory.WithObserver(journal.NewSlogSink(logger)),
	}
	for _, o := range cfg.Observers {
		opts = append(opts, inventory.WithObserver(o))
	}
	eng := inventory.New(opts...)
	stock := inventory.NewStock(cfg.Items)

	logger.Debug("run started", "fixture", cfg.Fixture, "items", len(cfg.Items), "days", cfg.Days)

	days, stopErr := stock.Advance(eng, cfg.Days, func(day int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stamper.SetDay(day)
		span.AddEvent("day.started", trace.WithAttributes(attribute.Int("day", day)))
		logger.Debug("advancing day", "day", day)
		return nil
	})

	// A cancelled run still closes out the days it completed, so the log
	// stays resumable from where it stopped.
	if storeSink != nil {
		if err := storeSink.Err(); err != nil {
			return nil, fmt.Errorf("persist events: %w", err)
		}
		persistCtx := context.WithoutCancel(ctx)
		if err := cfg.Store.WriteSnapshot(persistCtx, runID, days, SnapshotOf(stock.Items())); err != nil {
			return nil, err
		}
		if err := cfg.Store.FinishRun(persistCtx, runID, days); err != nil {
			return nil, err
		}
	}
	if stopErr != nil {
		logger.Warn("run stopped", "days", days, "error", stopErr)
		return nil, stopErr
	}

	logger.Debug("run finished", "events", recorder.Len())

	return &Outcome{
		RunID:   runID,
		Days:    days,
		Records: recorder.Records(),
		Items:   stock.Items(),
	}, nil
}

// SnapshotOf converts items to snapshot rows, keeping slice positions.
// Nil entries are left out.
func SnapshotOf(items []*inventory.Item) []store.SnapshotItem {
	out := make([]store.SnapshotItem, 0, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		out = append(out, store.SnapshotItem{Index: i, Name: item.Name, SellIn: item.SellIn, Quality: item.Quality})
	}
	return out
}

// ItemsFromSnapshot rebuilds items from snapshot rows, in row order.
func ItemsFromSnapshot(rows []store.SnapshotItem) []*inventory.Item {
	items := make([]*inventory.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, &inventory.Item{Name: row.Name, SellIn: row.SellIn, Quality: row.Quality})
	}
	return items
}
