package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/service"
)

// PairCommand compares a single pair of files
type PairCommand struct {
	json bool
}

// NewPairCommand creates a new pair command
func NewPairCommand() *PairCommand {
	return &PairCommand{}
}

// CreateCobraCommand creates the cobra command for a single comparison
func (p *PairCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair <fileA> <fileB>",
		Short: "Compare two Python files",
		Long: `Compare two Python files and print their similarity score.

Examples:
  antiplag pair original.py submission.py

  # Include the edit distance and unrounded similarity
  antiplag pair --json original.py submission.py`,
		Args: cobra.ExactArgs(2),
		RunE: p.runPair,
	}

	cmd.Flags().BoolVar(&p.json, "json", false, "Print the full result as JSON")

	return cmd
}

func (p *PairCommand) runPair(cmd *cobra.Command, args []string) error {
	comparisonService := service.NewComparisonService(nil, slog.Default())
	result := comparisonService.CompareFiles(context.Background(), args[0], args[1])

	if p.json {
		if err := service.WriteJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), service.NewCompareFormatter().FormatLine(result))
	}

	if !result.OK() {
		return errors.New(result.Reason)
	}
	return nil
}

// NewPairCmd creates and returns the pair cobra command
func NewPairCmd() *cobra.Command {
	return NewPairCommand().CreateCobraCommand()
}
