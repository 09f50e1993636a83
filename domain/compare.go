package domain

import (
	"context"
	"io"
)

// PairStatus is the outcome of one pair comparison
type PairStatus string

const (
	PairStatusOK     PairStatus = "ok"
	PairStatusFailed PairStatus = "failed"
)

// FilePair is one line of a comparison manifest.
type FilePair struct {
	PathA string
	PathB string
	Line  int    // 1-based manifest line
	Raw   string // original line text
	Err   error  // set when the line could not be split into two paths
}

// PairResult is the explicit per-pair result: either a score or a reason.
type PairResult struct {
	PathA      string     `json:"path_a" yaml:"path_a"`
	PathB      string     `json:"path_b" yaml:"path_b"`
	Line       int        `json:"line,omitempty" yaml:"line,omitempty"`
	Status     PairStatus `json:"status" yaml:"status"`
	Score      float64    `json:"score" yaml:"score"`
	Similarity float64    `json:"-" yaml:"-"` // unrounded
	Distance   int        `json:"distance" yaml:"distance"`
	Flagged    bool       `json:"flagged" yaml:"flagged"`
	Reason     string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	ErrorCode  string     `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// OK reports whether the pair was scored
func (r PairResult) OK() bool {
	return r.Status == PairStatusOK
}

// CompareRequest represents a batch comparison driven by a manifest
type CompareRequest struct {
	// Manifest with one "<pathA> <pathB>" pair per line
	ManifestPath string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // report file; empty writes to OutputWriter

	// Execution
	Workers      int // 1 compares pairs sequentially
	ShowProgress bool

	// Flagging
	FlagThreshold float64
	FailOnFlagged bool

	// Configuration
	ConfigPath string
}

// CompareSummary aggregates a batch run
type CompareSummary struct {
	TotalPairs   int     `json:"total_pairs" yaml:"total_pairs"`
	Succeeded    int     `json:"succeeded" yaml:"succeeded"`
	Failed       int     `json:"failed" yaml:"failed"`
	FlaggedPairs int     `json:"flagged_pairs" yaml:"flagged_pairs"`
	AverageScore float64 `json:"average_score" yaml:"average_score"`
	MaxScore     float64 `json:"max_score" yaml:"max_score"`
}

// CompareResponse holds the results of a batch run in manifest order
type CompareResponse struct {
	Results       []PairResult   `json:"results" yaml:"results"`
	Summary       CompareSummary `json:"summary" yaml:"summary"`
	FlagThreshold float64        `json:"flag_threshold" yaml:"flag_threshold"`
	GeneratedAt   string         `json:"generated_at" yaml:"generated_at"`
	DurationMs    int64          `json:"duration_ms" yaml:"duration_ms"`
	Version       string         `json:"version" yaml:"version"`
}

// HasFlagged reports whether any pair met the flag threshold
func (r *CompareResponse) HasFlagged() bool {
	return r.Summary.FlaggedPairs > 0
}

// Summarize aggregates results; Flagged must already be set on each one
func Summarize(results []PairResult) CompareSummary {
	summary := CompareSummary{TotalPairs: len(results)}
	total := 0.0
	for _, r := range results {
		if !r.OK() {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		total += r.Score
		if r.Score > summary.MaxScore {
			summary.MaxScore = r.Score
		}
		if r.Flagged {
			summary.FlaggedPairs++
		}
	}
	if summary.Succeeded > 0 {
		summary.AverageScore = total / float64(summary.Succeeded)
	}
	return summary
}

// Validate validates the compare request
func (req *CompareRequest) Validate() error {
	if req.ManifestPath == "" {
		return NewInvalidInputError("manifest path must be specified", nil)
	}
	if req.Workers < 1 {
		return NewInvalidInputError("workers must be >= 1", nil)
	}
	if req.FlagThreshold < 0 || req.FlagThreshold > 1 {
		return NewInvalidInputError("flag threshold must be between 0 and 1", nil)
	}
	if !IsReportFormat(req.OutputFormat) {
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// SourceComparison is the result of comparing two in-memory sources
type SourceComparison struct {
	Score      float64 `json:"score" yaml:"score"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Distance   int     `json:"distance" yaml:"distance"`
	CanonicalA string  `json:"canonical_a,omitempty" yaml:"canonical_a,omitempty"`
	CanonicalB string  `json:"canonical_b,omitempty" yaml:"canonical_b,omitempty"`
}

// IdentifierAlias is one raw name and the alias it was given
type IdentifierAlias struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias" yaml:"alias"`
}

// CanonicalForm is the normalized rendering of one source
type CanonicalForm struct {
	Path        string            `json:"path,omitempty" yaml:"path,omitempty"`
	Text        string            `json:"canonical" yaml:"canonical"`
	Identifiers []IdentifierAlias `json:"identifiers" yaml:"identifiers"`
	Docstrings  int               `json:"docstrings_removed" yaml:"docstrings_removed"`
	Tree        string            `json:"tree,omitempty" yaml:"tree,omitempty"` // debug dump, on request
}

// ComparisonService defines the core business logic for comparisons
type ComparisonService interface {
	// ComparePairs compares every manifest pair; failures become failed
	// results and never abort the batch.
	ComparePairs(ctx context.Context, pairs []FilePair, req CompareRequest) (*CompareResponse, error)

	// CompareFiles compares two files on disk
	CompareFiles(ctx context.Context, pathA, pathB string) PairResult

	// CompareSources compares two sources held in memory
	CompareSources(ctx context.Context, sourceA, sourceB []byte) (*SourceComparison, error)

	// Canonicalize normalizes one source; withTree adds a tree dump
	Canonicalize(ctx context.Context, source []byte, withTree bool) (*CanonicalForm, error)

	// CompareMatrix compares every unordered pair of files
	CompareMatrix(ctx context.Context, files []string, req MatrixRequest) (*MatrixResponse, error)
}

// ManifestReader parses comparison manifests
type ManifestReader interface {
	// ReadManifest reads and parses the manifest at path
	ReadManifest(path string) ([]FilePair, error)

	// Parse parses manifest content
	Parse(r io.Reader) ([]FilePair, error)
}

// CompareOutputFormatter formats batch results
type CompareOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *CompareResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CompareResponse, format OutputFormat, writer io.Writer) error

	// FormatLine formats one result as a report line
	FormatLine(result PairResult) string
}

// CompareConfigurationLoader loads compare settings from configuration
type CompareConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CompareRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CompareRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CompareRequest, override *CompareRequest) *CompareRequest
}
