package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all antiplag MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("compare_sources",
		mcp.WithDescription("Score how similar two Python sources are after renaming identifiers and removing leading docstrings (1.0 = identical)"),
		mcp.WithString("source_a",
			mcp.Required(),
			mcp.Description("First Python source")),
		mcp.WithString("source_b",
			mcp.Required(),
			mcp.Description("Second Python source")),
		mcp.WithBoolean("include_canonical",
			mcp.Description("Include both canonical texts in the result (default: false)")),
	), h.HandleCompareSources)

	s.AddTool(mcp.NewTool("compare_files",
		mcp.WithDescription("Score the similarity of two Python files on disk"),
		mcp.WithString("path_a",
			mcp.Required(),
			mcp.Description("Path to the first Python file")),
		mcp.WithString("path_b",
			mcp.Required(),
			mcp.Description("Path to the second Python file")),
		mcp.WithNumber("flag_threshold",
			mcp.Description("Score at or above which the pair is flagged (default: from config, 0.8)")),
	), h.HandleCompareFiles)

	s.AddTool(mcp.NewTool("canonicalize_source",
		mcp.WithDescription("Show the canonical form of a Python source: identifiers renamed to n0, n1, ... and leading docstrings removed"),
		mcp.WithString("source",
			mcp.Description("Python source to canonicalize")),
		mcp.WithString("path",
			mcp.Description("Python file to canonicalize, used when source is not given")),
		mcp.WithBoolean("with_tree",
			mcp.Description("Include a dump of the normalized syntax tree (default: false)")),
	), h.HandleCanonicalizeSource)

	s.AddTool(mcp.NewTool("compare_directory",
		mcp.WithDescription("Compare every pair of Python files under a directory and list the most similar pairs"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory (or file) to scan")),
		mcp.WithNumber("min_score",
			mcp.Description("Only report pairs at or above this score (default: from config, 0.5)")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum pairs to report, 0 = all (default: 20)")),
	), h.HandleCompareDirectory)
}
