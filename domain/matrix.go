package domain

import (
	"io"
)

// MatrixRequest compares every unordered pair of collected Python files
type MatrixRequest struct {
	// Input files or directories to scan
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Reporting
	MinScore      float64 // pairs below this score are not reported
	MaxResults    int     // 0 means no limit
	FlagThreshold float64

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	Workers      int
	ShowProgress bool
	ConfigPath   string
}

// FileFailure records a file that could not be normalized
type FileFailure struct {
	Path      string `json:"path" yaml:"path"`
	Reason    string `json:"reason" yaml:"reason"`
	ErrorCode string `json:"error_code" yaml:"error_code"`
}

// MatrixSummary aggregates a matrix run
type MatrixSummary struct {
	FilesAnalyzed int     `json:"files_analyzed" yaml:"files_analyzed"`
	FilesFailed   int     `json:"files_failed" yaml:"files_failed"`
	PairsCompared int     `json:"pairs_compared" yaml:"pairs_compared"`
	PairsReported int     `json:"pairs_reported" yaml:"pairs_reported"`
	FlaggedPairs  int     `json:"flagged_pairs" yaml:"flagged_pairs"`
	MaxScore      float64 `json:"max_score" yaml:"max_score"`
}

// MatrixResponse lists reported pairs sorted by score, highest first
type MatrixResponse struct {
	Files       []string      `json:"files" yaml:"files"`
	Pairs       []PairResult  `json:"pairs" yaml:"pairs"`
	Failures    []FileFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Summary     MatrixSummary `json:"summary" yaml:"summary"`
	GeneratedAt string        `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64         `json:"duration_ms" yaml:"duration_ms"`
	Version     string        `json:"version" yaml:"version"`
}

// Validate validates the matrix request
func (req *MatrixRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewInvalidInputError("at least one path must be specified", nil)
	}
	if req.MinScore < 0 || req.MinScore > 1 {
		return NewInvalidInputError("min score must be between 0 and 1", nil)
	}
	if req.MaxResults < 0 {
		return NewInvalidInputError("max results must be >= 0", nil)
	}
	if req.Workers < 1 {
		return NewInvalidInputError("workers must be >= 1", nil)
	}
	if !IsMatrixFormat(req.OutputFormat) {
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// MatrixOutputFormatter formats matrix results
type MatrixOutputFormatter interface {
	// Write writes the formatted output to the writer
	Write(response *MatrixResponse, format OutputFormat, writer io.Writer) error
}

// FileCollector finds the Python files of a matrix run
type FileCollector interface {
	// CollectPythonFiles returns the sorted, de-duplicated Python files
	// under paths that pass the include and exclude patterns
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
}

// MatrixConfigurationLoader loads matrix settings from configuration
type MatrixConfigurationLoader interface {
	LoadMatrixConfig(path string) (*MatrixRequest, error)
	MergeMatrixConfig(base *MatrixRequest, override *MatrixRequest) *MatrixRequest
}
