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

// MatrixCommand compares every pair of collected files
type MatrixCommand struct {
	recursive       bool
	includePatterns []string
	excludePatterns []string
	minScore        float64
	maxResults      int
	flagThreshold   float64
	outputFormat    string
	outputPath      string
	workers         int
	progress        bool
}

// NewMatrixCommand creates a new matrix command
func NewMatrixCommand() *MatrixCommand {
	return &MatrixCommand{
		recursive:     true,
		minScore:      domain.DefaultMatrixMinScore,
		maxResults:    domain.DefaultMatrixMaxResults,
		flagThreshold: domain.DefaultFlagThreshold,
		outputFormat:  string(domain.DefaultMatrixFormat),
		workers:       domain.DefaultWorkers,
		progress:      true,
	}
}

// CreateCobraCommand creates the cobra command for all-pairs comparison
func (m *MatrixCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix [paths...]",
		Short: "Compare every pair of Python files under the given paths",
		Long: `Collect Python files and compare every unordered pair.

Each file is normalized once. Pairs scoring at least --min-score are
reported, most similar first. Files that do not parse are listed as skipped.

Examples:
  # All submissions of an assignment
  antiplag matrix submissions/

  # Only the 10 most similar pairs, as CSV
  antiplag matrix --max-results 10 --format csv submissions/

  # Ignore provided skeleton code
  antiplag matrix --exclude "**/skeleton/**" submissions/`,
		Args: cobra.ArbitraryArgs,
		RunE: m.runMatrix,
	}

	cmd.Flags().BoolVarP(&m.recursive, "recursive", "r", m.recursive,
		"Recursively collect files from directories")
	cmd.Flags().StringSliceVar(&m.includePatterns, "include", []string{"**/*.py"},
		"File patterns to include")
	cmd.Flags().StringSliceVar(&m.excludePatterns, "exclude", []string{},
		"File patterns to exclude")
	cmd.Flags().Float64Var(&m.minScore, "min-score", m.minScore,
		"Only report pairs at or above this score (0.0-1.0)")
	cmd.Flags().IntVar(&m.maxResults, "max-results", m.maxResults,
		"Maximum pairs to report (0 = all)")
	cmd.Flags().Float64Var(&m.flagThreshold, "flag-threshold", m.flagThreshold,
		"Flag pairs scoring at or above this value (0.0-1.0)")
	cmd.Flags().StringVarP(&m.outputFormat, "format", "f", m.outputFormat,
		"Report format: table, json, yaml, csv")
	cmd.Flags().StringVarP(&m.outputPath, "output", "o", "",
		"Report file path (default: stdout)")
	cmd.Flags().IntVarP(&m.workers, "workers", "w", m.workers,
		"Number of files normalized concurrently")
	cmd.Flags().BoolVar(&m.progress, "progress", m.progress,
		"Show a progress bar on interactive terminals")

	return cmd
}

func (m *MatrixCommand) runMatrix(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	request := domain.MatrixRequest{
		Paths:           args,
		Recursive:       m.recursive,
		IncludePatterns: m.includePatterns,
		ExcludePatterns: m.excludePatterns,
		MinScore:        m.minScore,
		MaxResults:      m.maxResults,
		FlagThreshold:   m.flagThreshold,
		OutputFormat:    domain.OutputFormat(m.outputFormat),
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      m.outputPath,
		Workers:         m.workers,
		ShowProgress:    m.progress,
		ConfigPath:      configPathFrom(cmd),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comparisonService := service.NewComparisonService(newProgress(cmd, m.progress, "Comparing"), slog.Default())

	useCase, err := app.NewMatrixUseCaseBuilder().
		WithService(comparisonService).
		WithFileCollector(service.NewFileReader()).
		WithFormatter(service.NewMatrixFormatter()).
		WithConfigLoader(service.NewConfigurationLoader(startDirFor(args[0]), explicitFlags(cmd))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithStatusWriter(cmd.ErrOrStderr()).
		Build()
	if err != nil {
		return err
	}

	_, err = useCase.Execute(ctx, request)
	return err
}

// NewMatrixCmd creates and returns the matrix cobra command
func NewMatrixCmd() *cobra.Command {
	return NewMatrixCommand().CreateCobraCommand()
}
