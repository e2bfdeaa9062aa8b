package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/fixture"
	"github.com/roach88/gildedrose/internal/inventory"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Fixture  string            `json:"fixture,omitempty"`
	Items    int               `json:"items"`
	Warnings []fixture.Warning `json:"warnings"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixture>",
		Short: "Check a fixture file without running it",
		Long: `Load a fixture, build every item and lint item names.

Names within a small edit distance of a category keyword that do not
match it (for example "Aged Bree") are reported as warnings. Warnings do
not fail validation.

Exit codes:
  0 - Fixture is valid
  1 - An item is invalid
  2 - Fixture could not be loaded`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	logger.Debug("loading fixture", "path", path)
	f, err := fixture.Load(path)
	if err != nil {
		code := fixture.ErrorCode(err)
		if code == "" {
			code = ErrCodeGeneric
		}
		_ = formatter.Error(code, err.Error(), nil)
		// Unloadable fixtures are command-level errors (exit code 2)
		return WrapExitError(ExitCommandError, code, err)
	}

	warnings := fixture.Lint(f)
	result := ValidationResult{
		Fixture:  f.Name,
		Items:    len(f.Items),
		Warnings: warnings,
	}

	if _, err := f.Build(); err != nil {
		_ = formatter.Failure(result, ErrCodeInvalidItem, err.Error())
		return WrapExitError(ExitFailure, "validation failed", err)
	}
	result.Valid = true

	if formatter.JSON() {
		return formatter.Success(result)
	}

	for _, w := range warnings {
		fmt.Fprintf(formatter.Writer, "⚠ %s\n", w)
	}
	fmt.Fprintf(formatter.Writer, "✓ Fixture %q is valid (%d items)\n", f.Name, len(f.Items))
	if opts.Verbose {
		for i, spec := range f.Items {
			c := inventory.Classify(spec.Name)
			fmt.Fprintf(formatter.Writer, "  [%d] %s: %s%s\n", i, spec.Name, c.Category, enhancedSuffix(c.Enhanced))
		}
	}
	return nil
}

func enhancedSuffix(enhanced bool) string {
	if enhanced {
		return " (conjured)"
	}
	return ""
}
