package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/service"
)

// CanonicalCommand prints the normalized form of one file
type CanonicalCommand struct {
	showTree bool
	showMap  bool
	json     bool
}

// NewCanonicalCommand creates a new canonical command
func NewCanonicalCommand() *CanonicalCommand {
	return &CanonicalCommand{}
}

// CreateCobraCommand creates the cobra command for canonical output
func (c *CanonicalCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonical <file>",
		Short: "Print the canonical text a file is compared as",
		Long: `Print the canonical text of a Python file: variable references renamed
to n0, n1, ... in order of first use and leading docstrings removed.
This is exactly the text the similarity score is computed on.

Examples:
  antiplag canonical submission.py

  # Also show which names became which aliases
  antiplag canonical --map submission.py

  # Dump the normalized syntax tree
  antiplag canonical --tree submission.py`,
		Args: cobra.ExactArgs(1),
		RunE: c.runCanonical,
	}

	cmd.Flags().BoolVar(&c.showTree, "tree", false, "Dump the normalized syntax tree")
	cmd.Flags().BoolVar(&c.showMap, "map", false, "Print the identifier map")
	cmd.Flags().BoolVar(&c.json, "json", false, "Print the result as JSON")

	return cmd
}

func (c *CanonicalCommand) runCanonical(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := service.NewFileReader().ReadFile(path)
	if err != nil {
		return err
	}

	comparisonService := service.NewComparisonService(nil, slog.Default())
	form, err := comparisonService.Canonicalize(context.Background(), source, c.showTree)
	if err != nil {
		return err
	}
	form.Path = path

	out := cmd.OutOrStdout()
	if c.json {
		return service.WriteJSON(out, form)
	}

	fmt.Fprintln(out, form.Text)

	if c.showMap {
		fmt.Fprintln(out)
		fmt.Fprint(out, service.NewFormatUtils().FormatSectionHeader("Identifiers"))
		if len(form.Identifiers) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, id := range form.Identifiers {
			fmt.Fprintf(out, "  %s -> %s\n", id.Alias, id.Name)
		}
		fmt.Fprintf(out, "  docstrings removed: %d\n", form.Docstrings)
	}

	if c.showTree {
		fmt.Fprintln(out)
		fmt.Fprint(out, service.NewFormatUtils().FormatSectionHeader("Tree"))
		fmt.Fprint(out, strings.TrimRight(form.Tree, "\n")+"\n")
	}
	return nil
}

// NewCanonicalCmd creates and returns the canonical cobra command
func NewCanonicalCmd() *cobra.Command {
	return NewCanonicalCommand().CreateCobraCommand()
}
