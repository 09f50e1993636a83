package mcp

import (
	"io"
	"log/slog"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/config"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

// defaultDirectoryResults caps compare_directory output unless overridden
const defaultDirectoryResults = 20

// Dependencies is what the tool handlers share: one comparison service,
// one file reader and the configuration loaded at startup.
type Dependencies struct {
	service domain.ComparisonService
	files   *service.FileReaderImpl
	config  *config.Config
}

// NewDependencies falls back to the default configuration when cfg is nil.
// MCP owns stdout, so a nil logger discards.
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dependencies{
		service: service.NewComparisonService(nil, logger),
		files:   service.NewFileReader(),
		config:  cfg,
	}
}

func (d *Dependencies) Config() *config.Config {
	return d.config
}

// DirectoryRequest is the matrix request compare_directory starts from
// before tool arguments are applied
func (d *Dependencies) DirectoryRequest(path string) domain.MatrixRequest {
	return domain.MatrixRequest{
		Paths:           []string{path},
		Recursive:       d.config.Input.Recursive,
		IncludePatterns: d.config.Input.IncludePatterns,
		ExcludePatterns: d.config.Input.ExcludePatterns,
		MinScore:        d.config.Matrix.MinScore,
		MaxResults:      defaultDirectoryResults,
		FlagThreshold:   d.config.Compare.FlagThreshold,
		OutputFormat:    domain.OutputFormatJSON,
		Workers:         d.config.Compare.Workers,
	}
}
