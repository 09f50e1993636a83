package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/internal/config"
)

// InitCommand represents the init command
type InitCommand struct {
	force bool
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a default configuration file",
		Long: `Create a configuration file with every setting and its default value.

The file is written to .antiplag.toml in the current directory unless a
path is given. antiplag discovers .antiplag.toml by walking up from the
files it compares.

Examples:
  antiplag init

  # Overwrite an existing file
  antiplag init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	target := config.ConfigFileName
	if len(args) == 1 {
		target = args[0]
	}

	configPath, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if err := config.WriteDefaultConfig(configPath, i.force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", configPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
