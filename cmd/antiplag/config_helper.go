package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/config"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

// configPathFrom returns the --config value inherited from the root command
func configPathFrom(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func verboseFrom(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// explicitFlags records which flags of cmd the user actually set, so only
// those override configured values
func explicitFlags(cmd *cobra.Command) *config.FlagTracker {
	flags := config.NewFlagTrackerFromFlagSet(cmd.Flags())
	slog.Debug("explicit flags", "command", cmd.Name(), "flags", flags.Names())
	return flags
}

// startDirFor picks the directory configuration discovery walks up from:
// the directory of the first target, or the working directory.
func startDirFor(target string) string {
	if target == "" {
		return "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// newProgress returns a progress bar on stderr, or nil when disabled
func newProgress(cmd *cobra.Command, enabled bool, description string) domain.ProgressManager {
	if !enabled || verboseFrom(cmd) {
		return nil
	}
	pm := service.NewProgressManager(description)
	if !pm.IsInteractive() {
		return nil
	}
	pm.SetWriter(cmd.ErrOrStderr())
	if !pm.IsInteractive() {
		return nil
	}
	return pm
}
