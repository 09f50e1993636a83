package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/coder26-cmd/anti-plagiarism/internal/config"
	"github.com/coder26-cmd/anti-plagiarism/internal/logging"
	"github.com/coder26-cmd/anti-plagiarism/internal/version"
	"github.com/coder26-cmd/anti-plagiarism/mcp"
)

const serverName = "antiplag"

func main() {
	if err := config.LoadDotEnv("."); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Configuration is discovered from the working directory;
	// ANTIPLAG_CONFIG points at an explicit file.
	configPath := os.Getenv("ANTIPLAG_CONFIG")
	cfg, source, err := config.NewTomlConfigLoader().Load(configPath, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// MCP uses stdout for JSON-RPC, so logs go to the rotating file only
	logger, closer := logging.Configure(cfg.Log, false)
	defer closer.Close()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	handlers := mcp.NewHandlerSet(mcp.NewDependencies(cfg, logger))
	mcp.RegisterTools(server, handlers)

	logger.Info("mcp server starting",
		"version", version.Short(),
		"config", source.Path,
		"tools", []string{"compare_sources", "compare_files", "canonicalize_source", "compare_directory"})
	fmt.Fprintf(os.Stderr, "%s MCP server %s ready on stdio\n", serverName, version.Short())

	if err := mcpserver.ServeStdio(server); err != nil {
		slog.Error("mcp server stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
