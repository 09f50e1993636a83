package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/app"
	"github.com/coder26-cmd/anti-plagiarism/internal/config"
	"github.com/coder26-cmd/anti-plagiarism/internal/logging"
	"github.com/coder26-cmd/anti-plagiarism/internal/version"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

// Exit codes
const (
	exitOK      = 0
	exitFlagged = 1 // fail_on_flagged tripped
	exitError   = 2 // invalid input, missing files, etc.
)

// newRootCmd builds the command tree. Logging is configured once the
// target command is known so that --config and --log-file apply.
func newRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "antiplag",
		Short: "Python source similarity checker",
		Long: `antiplag estimates how similar Python source files are after removing
non-semantic differences: every variable reference is renamed to n0, n1, ...
in order of first use, and leading docstrings are dropped. The canonical
texts are then compared with a normalized Levenshtein distance.

A score of 1.0 means the files are identical up to renaming and docstrings.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv("."); err != nil {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			closer, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (default: discover .antiplag.toml)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (default: from config, .antiplag.log)")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewPairCmd())
	rootCmd.AddCommand(NewCanonicalCmd())
	rootCmd.AddCommand(NewMatrixCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// setupLogging installs the default slog logger. A broken configuration
// is not fatal here; the command reports it when it loads its settings.
func setupLogging(cmd *cobra.Command) (io.Closer, error) {
	logCfg := config.DefaultConfig().Log
	if cfg, _, err := config.NewTomlConfigLoader().Load(configPathFrom(cmd), "."); err == nil {
		logCfg = cfg.Log
	}
	if cmd.Flags().Changed("log-file") {
		logCfg.Filename, _ = cmd.Flags().GetString("log-file")
	}

	_, closer := logging.Configure(logCfg, verboseFrom(cmd))
	return closer, nil
}

// exitCode maps a command error onto the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrFlaggedPairs):
		return exitFlagged
	default:
		return exitError
	}
}

// reportError prints err with hints on how to recover. A flagged batch is
// a result, not a failure, so it gets no hints.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, app.ErrFlaggedPairs) {
		return
	}

	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	fmt.Fprintf(w, "\n%s. Suggestions:\n", categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  - %s\n", suggestion)
	}
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
