package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/app"
	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

// CompareCommand represents the manifest-driven batch comparison
type CompareCommand struct {
	outputFormat  string
	outputPath    string
	workers       int
	flagThreshold float64
	failOnFlagged bool
	progress      bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		outputFormat:  string(domain.DefaultCompareFormat),
		workers:       domain.DefaultWorkers,
		flagThreshold: domain.DefaultFlagThreshold,
		progress:      true,
	}
}

// CreateCobraCommand creates the cobra command for batch comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <manifest> [output]",
		Short: "Compare the file pairs listed in a manifest",
		Long: `Compare every pair of Python files listed in a manifest.

The manifest has one pair per line: two whitespace-separated paths.
Blank lines are skipped. The report has one line per pair, in manifest order:

  <pathA> <-> <pathB> = <score>

A pair whose files are missing or do not parse is reported as "failed" and
the rest of the batch continues. The report goes to stdout unless an output
path is given (as the second argument or with --output).

Exit codes:
  0: Comparison finished
  1: --fail-on-flagged is set and a pair scored at or above the threshold
  2: The batch could not run (missing manifest, invalid configuration, etc.)

Examples:
  # Write the text report to scores.txt
  antiplag compare pairs.txt scores.txt

  # Compare 8 pairs at a time and write JSON to stdout
  antiplag compare --workers 8 --format json pairs.txt

  # Fail a CI job when any pair is 90% similar or more
  antiplag compare --flag-threshold 0.9 --fail-on-flagged pairs.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.runCompare,
	}

	cmd.Flags().StringVarP(&c.outputFormat, "format", "f", c.outputFormat,
		"Report format: text, json, yaml, csv")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "",
		"Report file path (default: stdout)")
	cmd.Flags().IntVarP(&c.workers, "workers", "w", c.workers,
		"Number of pairs compared concurrently")
	cmd.Flags().Float64Var(&c.flagThreshold, "flag-threshold", c.flagThreshold,
		"Flag pairs scoring at or above this value (0.0-1.0)")
	cmd.Flags().BoolVar(&c.failOnFlagged, "fail-on-flagged", false,
		"Exit with status 1 when any pair is flagged")
	cmd.Flags().BoolVar(&c.progress, "progress", c.progress,
		"Show a progress bar on interactive terminals")

	return cmd
}

// runCompare executes the batch comparison
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	flags := explicitFlags(cmd)

	request := domain.CompareRequest{
		ManifestPath:  args[0],
		OutputFormat:  domain.OutputFormat(c.outputFormat),
		OutputWriter:  cmd.OutOrStdout(),
		OutputPath:    c.outputPath,
		Workers:       c.workers,
		ShowProgress:  c.progress,
		FlagThreshold: c.flagThreshold,
		FailOnFlagged: c.failOnFlagged,
		ConfigPath:    configPathFrom(cmd),
	}
	if len(args) == 2 {
		request.OutputPath = args[1]
		flags.Set("output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comparisonService := service.NewComparisonService(newProgress(cmd, c.progress, "Comparing"), slog.Default())

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(comparisonService).
		WithManifestReader(service.NewManifestReader()).
		WithFormatter(service.NewCompareFormatter()).
		WithConfigLoader(service.NewConfigurationLoader(startDirFor(request.ManifestPath), flags)).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithStatusWriter(cmd.ErrOrStderr()).
		Build()
	if err != nil {
		return err
	}

	_, err = useCase.Execute(ctx, request)
	return err
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
