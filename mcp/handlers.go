package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareSources handles the compare_sources tool
func (h *HandlerSet) HandleCompareSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	sourceA, ok := args["source_a"].(string)
	if !ok {
		return mcp.NewToolResultError("source_a parameter is required and must be a string"), nil
	}
	sourceB, ok := args["source_b"].(string)
	if !ok {
		return mcp.NewToolResultError("source_b parameter is required and must be a string"), nil
	}
	includeCanonical, _ := args["include_canonical"].(bool)

	result, err := h.deps.service.CompareSources(ctx, []byte(sourceA), []byte(sourceB))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	if !includeCanonical {
		result.CanonicalA, result.CanonicalB = "", ""
	}

	return jsonResult(result)
}

// HandleCompareFiles handles the compare_files tool
func (h *HandlerSet) HandleCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	pathA, ok := args["path_a"].(string)
	if !ok {
		return mcp.NewToolResultError("path_a parameter is required and must be a string"), nil
	}
	pathB, ok := args["path_b"].(string)
	if !ok {
		return mcp.NewToolResultError("path_b parameter is required and must be a string"), nil
	}

	threshold := h.deps.Config().Compare.FlagThreshold
	if v, ok := args["flag_threshold"].(float64); ok {
		if v < 0 || v > 1 {
			return mcp.NewToolResultError("flag_threshold must be between 0 and 1"), nil
		}
		threshold = v
	}

	result := h.deps.service.CompareFiles(ctx, pathA, pathB)
	if !result.OK() {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %s", result.Reason)), nil
	}
	result.Flagged = result.Score >= threshold

	return jsonResult(result)
}

// HandleCanonicalizeSource handles the canonicalize_source tool
func (h *HandlerSet) HandleCanonicalizeSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	var (
		source []byte
		path   string
	)
	if s, ok := args["source"].(string); ok {
		source = []byte(s)
	} else if p, ok := args["path"].(string); ok {
		content, err := h.deps.files.ReadFile(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", p, err)), nil
		}
		source, path = content, p
	} else {
		return mcp.NewToolResultError("either source or path must be given"), nil
	}
	withTree, _ := args["with_tree"].(bool)

	form, err := h.deps.service.Canonicalize(ctx, source, withTree)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("canonicalization failed: %v", err)), nil
	}
	form.Path = path

	return jsonResult(form)
}

// HandleCompareDirectory handles the compare_directory tool
func (h *HandlerSet) HandleCompareDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := h.deps.DirectoryRequest(path)
	if v, ok := args["min_score"].(float64); ok {
		req.MinScore = v
	}
	if v, ok := args["max_results"].(float64); ok {
		req.MaxResults = int(v)
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := h.deps.files.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect files: %v", err)), nil
	}
	if len(files) < 2 {
		return mcp.NewToolResultError(fmt.Sprintf("need at least 2 Python files to compare, found %d", len(files))), nil
	}

	response, err := h.deps.service.CompareMatrix(ctx, files, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	return jsonResult(response)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
