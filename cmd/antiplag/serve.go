package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/api"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

// ServeCommand runs the HTTP API
type ServeCommand struct {
	addr string
}

// NewServeCommand creates a new serve command
func NewServeCommand() *ServeCommand {
	return &ServeCommand{}
}

// CreateCobraCommand creates the cobra command for the HTTP API
func (s *ServeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		Long: `Start an HTTP server exposing comparisons as a JSON API.

Endpoints:
  POST /api/v1/compare       {"source_a": "...", "source_b": "..."}
  POST /api/v1/canonicalize  {"source": "..."}
  GET  /healthz

Examples:
  antiplag serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: s.runServe,
	}

	cmd.Flags().StringVar(&s.addr, "addr", "", "Listen address (default: from config, :8080)")

	return cmd
}

func (s *ServeCommand) runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := service.NewConfigurationLoader(".", nil).Resolve(configPathFrom(cmd))
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = s.addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()
	server := api.NewServer(service.NewComparisonService(nil, logger), logger)

	fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}

// NewServeCmd creates and returns the serve cobra command
func NewServeCmd() *cobra.Command {
	return NewServeCommand().CreateCobraCommand()
}
