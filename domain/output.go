package domain

import (
	"context"
	"io"
)

// OutputFormat names a report encoding
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatCSV   OutputFormat = "csv"
	OutputFormatTable OutputFormat = "table" // matrix only
)

// IsReportFormat reports whether a batch report can be written as format
func IsReportFormat(format OutputFormat) bool {
	switch format {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return true
	}
	return false
}

// IsMatrixFormat accepts every report format plus table; matrix text is a
// table.
func IsMatrixFormat(format OutputFormat) bool {
	return format == OutputFormatTable || IsReportFormat(format)
}

// Extension is the file extension of a report in this format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return string(f)
	}
	return "txt"
}

// ReportWriter sends a rendered report to outputPath, creating or
// truncating the file, or to writer when outputPath is empty.
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressManager tracks one batch. Increment is called from workers.
type ProgressManager interface {
	Initialize(total int)
	Start()
	Increment()
	Complete(success bool)
	SetWriter(writer io.Writer)
	IsInteractive() bool
	Close()
}

// ParallelExecutor runs independent tasks with bounded concurrency
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(n int)
}

// ExecutableTask is one unit of work for a ParallelExecutor. Name
// prefixes any error the task returns.
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) error
}

// ErrorCategory groups error codes by what the user has to fix
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError pairs an error with its category and a short
// explanation for the command line
type CategorizedError struct {
	Category ErrorCategory
	Code     string // empty for uncoded errors
	Message  string
	Original error
}

func (e *CategorizedError) Error() string {
	if e.Original == nil {
		return e.Message
	}
	return e.Original.Error()
}

func (e *CategorizedError) Unwrap() error {
	return e.Original
}

// ErrorCategorizer turns command errors into hints
type ErrorCategorizer interface {
	Categorize(err error) *CategorizedError
	GetRecoverySuggestions(category ErrorCategory) []string
}
