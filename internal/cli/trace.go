package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/journal"
	"github.com/roach88/gildedrose/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - defaults to the latest run
	Item     string // optional - filter to one item name
	List     bool
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Run    store.Run     `json:"run"`
	Events []store.Event `json:"events"`
	Stats  TraceStats    `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalEvents int `json:"total_events"`
	Updated     int `json:"updated"`
	Skipped     int `json:"skipped"`
	Days        int `json:"days"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show recorded item events for a run",
		Long: `Show the item events recorded by "run --db", in the order they
happened.

Examples:
  gildedrose trace --db ./inventory.db
  gildedrose trace --db ./inventory.db --run 0190f4b6-...
  gildedrose trace --db ./inventory.db --item "Aged Brie"
  gildedrose trace --db ./inventory.db --list
  gildedrose trace --db ./inventory.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to trace (default: latest run)")
	cmd.Flags().StringVar(&opts.Item, "item", "", "filter to items with this exact name")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list recorded runs instead of events")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := store.OpenReadOnly(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.List {
		return listRuns(ctx, st, formatter)
	}

	run, err := resolveRun(ctx, st, opts.RunID)
	if errors.Is(err, store.ErrNoRuns) {
		if formatter.JSON() {
			return formatter.Success(TraceResult{Events: []store.Event{}})
		}
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	if err != nil {
		return err
	}

	events, err := st.ReadEvents(ctx, run.ID, opts.Item)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}

	result := TraceResult{Run: run, Events: events, Stats: traceStats(events)}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	return outputTraceText(formatter, result)
}

func resolveRun(ctx context.Context, st *store.Store, runID string) (store.Run, error) {
	if runID == "" {
		return st.LatestRun(ctx)
	}
	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", runID))
	}
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to read run", err)
	}
	return run, nil
}

func traceStats(events []store.Event) TraceStats {
	stats := TraceStats{TotalEvents: len(events)}
	for _, ev := range events {
		if ev.Skipped {
			stats.Skipped++
		} else {
			stats.Updated++
		}
		if ev.Day > stats.Days {
			stats.Days = ev.Day
		}
	}
	return stats
}

// outputTraceText outputs the trace result as text.
func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Run: %s (fixture %s, %d days)\n", result.Run.ID, result.Run.Fixture, result.Run.Days)
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No events.")
		return nil
	}

	day := 0
	for _, ev := range result.Events {
		if ev.Day != day {
			day = ev.Day
			fmt.Fprintf(w, "Day %d:\n", day)
		}
		fmt.Fprintf(w, "  [%d] %s\n", ev.Seq, journal.FormatLine(toInventoryEvent(ev)))
	}

	fmt.Fprintf(w, "\n%d events (%d updated, %d skipped)\n",
		result.Stats.TotalEvents, result.Stats.Updated, result.Stats.Skipped)
	return nil
}

func toInventoryEvent(ev store.Event) inventory.Event {
	category, _ := inventory.ParseCategory(ev.Category)
	return inventory.Event{
		Index:      ev.Index,
		Name:       ev.Name,
		Category:   category,
		Enhanced:   ev.Enhanced,
		OldSellIn:  ev.OldSellIn,
		NewSellIn:  ev.NewSellIn,
		OldQuality: ev.OldQuality,
		NewQuality: ev.NewQuality,
		Skipped:    ev.Skipped,
	}
}

func listRuns(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.JSON() {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%d\t%s\t%s\t%d days\n", r.Seq, r.ID, r.Fixture, r.Days)
	}
	return nil
}
