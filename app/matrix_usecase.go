package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// MatrixUseCase orchestrates the all-pairs comparison workflow
type MatrixUseCase struct {
	service      domain.ComparisonService
	collector    domain.FileCollector
	formatter    domain.MatrixOutputFormatter
	configLoader domain.MatrixConfigurationLoader
	output       domain.ReportWriter
	status       io.Writer
}

// NewMatrixUseCase creates a new matrix use case
func NewMatrixUseCase(
	service domain.ComparisonService,
	collector domain.FileCollector,
	formatter domain.MatrixOutputFormatter,
	configLoader domain.MatrixConfigurationLoader,
	output domain.ReportWriter,
	status io.Writer,
) *MatrixUseCase {
	if status == nil {
		status = os.Stderr
	}
	return &MatrixUseCase{
		service:      service,
		collector:    collector,
		formatter:    formatter,
		configLoader: configLoader,
		output:       output,
		status:       status,
	}
}

// Execute collects files, compares every pair and writes the report
func (uc *MatrixUseCase) Execute(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResponse, error) {
	finalReq := req
	if uc.configLoader != nil {
		base, err := uc.configLoader.LoadMatrixConfig(req.ConfigPath)
		if err != nil {
			return nil, err
		}
		finalReq = *uc.configLoader.MergeMatrixConfig(base, &req)
	}

	if err := finalReq.Validate(); err != nil {
		return nil, err
	}

	files, err := uc.collector.CollectPythonFiles(
		finalReq.Paths,
		finalReq.Recursive,
		finalReq.IncludePatterns,
		finalReq.ExcludePatterns,
	)
	if err != nil {
		return nil, err
	}
	if len(files) < 2 {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("need at least 2 Python files to compare, found %d", len(files)), nil)
	}

	pairCount := len(files) * (len(files) - 1) / 2
	fmt.Fprintf(uc.status, "Comparing %d files (%d pairs)...\n", len(files), pairCount)

	response, err := uc.service.CompareMatrix(ctx, files, finalReq)
	if err != nil {
		return nil, err
	}

	for _, failure := range response.Failures {
		fmt.Fprintf(uc.status, "skipped %s: %s\n", failure.Path, failure.Reason)
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}
	if uc.output != nil {
		err = uc.output.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, writeFunc)
	} else {
		err = writeFunc(finalReq.OutputWriter)
	}
	if err != nil {
		return nil, domain.NewOutputError("failed to write report", err)
	}

	return response, nil
}

// MatrixUseCaseBuilder provides a builder pattern for creating MatrixUseCase
type MatrixUseCaseBuilder struct {
	service      domain.ComparisonService
	collector    domain.FileCollector
	formatter    domain.MatrixOutputFormatter
	configLoader domain.MatrixConfigurationLoader
	output       domain.ReportWriter
	status       io.Writer
}

// NewMatrixUseCaseBuilder creates a new builder
func NewMatrixUseCaseBuilder() *MatrixUseCaseBuilder {
	return &MatrixUseCaseBuilder{}
}

// WithService sets the comparison service
func (b *MatrixUseCaseBuilder) WithService(service domain.ComparisonService) *MatrixUseCaseBuilder {
	b.service = service
	return b
}

// WithFileCollector sets the file collector
func (b *MatrixUseCaseBuilder) WithFileCollector(collector domain.FileCollector) *MatrixUseCaseBuilder {
	b.collector = collector
	return b
}

// WithFormatter sets the output formatter
func (b *MatrixUseCaseBuilder) WithFormatter(formatter domain.MatrixOutputFormatter) *MatrixUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *MatrixUseCaseBuilder) WithConfigLoader(loader domain.MatrixConfigurationLoader) *MatrixUseCaseBuilder {
	b.configLoader = loader
	return b
}

// WithOutputWriter sets the report writer
func (b *MatrixUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *MatrixUseCaseBuilder {
	b.output = output
	return b
}

// WithStatusWriter sets where status messages go
func (b *MatrixUseCaseBuilder) WithStatusWriter(status io.Writer) *MatrixUseCaseBuilder {
	b.status = status
	return b
}

// Build creates the MatrixUseCase with the configured dependencies
func (b *MatrixUseCaseBuilder) Build() (*MatrixUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("comparison service is required")
	}
	if b.collector == nil {
		return nil, fmt.Errorf("file collector is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewMatrixUseCase(b.service, b.collector, b.formatter, b.configLoader, b.output, b.status), nil
}
