package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/fixture"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/journal"
	"github.com/roach88/gildedrose/internal/runner"
	"github.com/roach88/gildedrose/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Days     int
	Database string
	LogFile  string
	Resume   bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs journal.RunIDGenerator
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	RunID   string               `json:"run_id"`
	Fixture string               `json:"fixture"`
	Days    int                  `json:"days"`
	Events  int                  `json:"events"`
	Items   []store.SnapshotItem `json:"items"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [fixture]",
		Short: "Advance an inventory by one or more days",
		Long: `Advance an inventory and print every item afterwards as
"<name>, <sell_in>, <quality>".

Without a fixture argument the built-in demo inventory is used. Fixtures
may be YAML (.yaml, .yml) or CUE (.cue) files.

With --db the run, every item event and the final items are stored in a
SQLite database. --resume continues from the newest run in that database.
--log appends one line per item update to a text file.

Examples:
  gildedrose run
  gildedrose run ./shop.yaml --days 5
  gildedrose run ./shop.cue --db ./inventory.db --log ./inventory.log
  gildedrose run --db ./inventory.db --resume --days 1`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 0, "days to advance (default: the fixture's days, or 1)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event log")
	cmd.Flags().StringVar(&opts.LogFile, "log", "", "append item updates to this text file")
	cmd.Flags().BoolVar(&opts.Resume, "resume", false, "continue from the latest snapshot in --db")

	return cmd
}

// startingPoint is the inventory a run begins from.
type startingPoint struct {
	label string
	items []*inventory.Item
	days  int
}

func runInventory(opts *RunOptions, args []string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.Resume && len(args) > 0 {
		return NewExitError(ExitCommandError, "a fixture argument cannot be combined with --resume")
	}
	if opts.Resume && opts.Database == "" {
		return NewExitError(ExitCommandError, "--resume requires --db")
	}
	if cmd.Flags().Changed("days") && opts.Days < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--days must be non-negative, got %d", opts.Days))
	}

	// Stop cleanly between days on Ctrl-C
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database)
		var err error
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	var (
		start startingPoint
		err   error
	)
	if opts.Resume {
		start, err = resumePoint(ctx, st)
	} else {
		start, err = fixturePoint(args, logger)
	}
	if err != nil {
		return err
	}

	days := opts.Days
	if !cmd.Flags().Changed("days") {
		days = start.days
		if days == 0 {
			days = 1
		}
	}

	var observers []inventory.Observer
	var textSink *journal.TextSink
	if opts.LogFile != "" {
		textSink, err = journal.OpenTextSink(opts.LogFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open log file", err)
		}
		defer textSink.Close()
		observers = append(observers, textSink)
	}

	out, err := runner.Run(ctx, runner.Config{
		IDs:       opts.RunIDs,
		Fixture:   start.label,
		Items:     start.items,
		Days:      days,
		Store:     st,
		Observers: observers,
		Logger:    logger,
	})
	if errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "run interrupted", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}
	if textSink != nil && textSink.Err() != nil {
		return WrapExitError(ExitFailure, "failed to write log file", textSink.Err())
	}

	if formatter.JSON() {
		return formatter.Success(RunResult{
			RunID:   out.RunID,
			Fixture: start.label,
			Days:    out.Days,
			Events:  len(out.Records),
			Items:   out.Snapshot(),
		})
	}

	for _, item := range out.Items {
		if item != nil {
			fmt.Fprintln(formatter.Writer, item)
		}
	}
	return nil
}

// fixturePoint loads the fixture named by args, or the built-in default.
func fixturePoint(args []string, logger *slog.Logger) (startingPoint, error) {
	f := fixture.Default()
	if len(args) == 1 {
		var err error
		f, err = fixture.Load(args[0])
		if err != nil {
			return startingPoint{}, WrapExitError(ExitCommandError, "failed to load fixture", err)
		}
	}

	for _, w := range fixture.Lint(f) {
		logger.Warn("suspicious item name", "index", w.Index, "name", w.Name, "keyword", w.Keyword, "distance", w.Distance)
	}

	items, err := f.Build()
	if err != nil {
		return startingPoint{}, WrapExitError(ExitCommandError, "invalid fixture", err)
	}
	return startingPoint{label: f.Name, items: items, days: f.Days}, nil
}

// resumePoint rebuilds the items of the newest snapshotted run.
func resumePoint(ctx context.Context, st *store.Store) (startingPoint, error) {
	run, rows, err := st.LatestSnapshot(ctx)
	if errors.Is(err, store.ErrNoRuns) {
		return startingPoint{}, NewExitError(ExitCommandError, "nothing to resume: no runs recorded")
	}
	if err != nil {
		return startingPoint{}, WrapExitError(ExitCommandError, "failed to read latest snapshot", err)
	}
	return startingPoint{label: "resume:" + run.ID, items: runner.ItemsFromSnapshot(rows)}, nil
}
