package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// ErrFlaggedPairs is returned when fail_on_flagged is set and at least one
// pair met the flag threshold. The report has been written by then.
var ErrFlaggedPairs = errors.New("flagged pairs found")

// summaryFormatter is implemented by formatters that can render a
// human-readable batch summary for the status stream
type summaryFormatter interface {
	FormatSummary(response *domain.CompareResponse) string
}

// CompareUseCase orchestrates the manifest-driven comparison workflow
type CompareUseCase struct {
	service        domain.ComparisonService
	manifestReader domain.ManifestReader
	formatter      domain.CompareOutputFormatter
	configLoader   domain.CompareConfigurationLoader
	output         domain.ReportWriter
	status         io.Writer
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.ComparisonService,
	manifestReader domain.ManifestReader,
	formatter domain.CompareOutputFormatter,
	configLoader domain.CompareConfigurationLoader,
	output domain.ReportWriter,
	status io.Writer,
) *CompareUseCase {
	if status == nil {
		status = os.Stderr
	}
	return &CompareUseCase{
		service:        service,
		manifestReader: manifestReader,
		formatter:      formatter,
		configLoader:   configLoader,
		output:         output,
		status:         status,
	}
}

// Execute runs the batch: read the manifest, compare every pair, write the
// report. Per-pair failures are part of the report, not errors.
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, err
	}

	if err := finalReq.Validate(); err != nil {
		return nil, err
	}

	pairs, err := uc.manifestReader.ReadManifest(finalReq.ManifestPath)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(uc.status, "Comparing %d pairs from %s...\n", len(pairs), finalReq.ManifestPath)

	response, err := uc.service.ComparePairs(ctx, pairs, finalReq)
	if err != nil {
		return nil, err
	}

	for _, result := range response.Results {
		if !result.OK() {
			fmt.Fprintf(uc.status, "line %d: %s\n", result.Line, result.Reason)
		}
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

	if sf, ok := uc.formatter.(summaryFormatter); ok {
		fmt.Fprint(uc.status, "\n"+sf.FormatSummary(response))
	}

	if finalReq.FailOnFlagged && response.HasFlagged() {
		return response, ErrFlaggedPairs
	}
	return response, nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CompareUseCase) loadAndMergeConfig(req domain.CompareRequest) (domain.CompareRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.CompareRequest
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, domain.NewConfigError(fmt.Sprintf("failed to load config from %s", req.ConfigPath), err)
		}
		configReq = loaded
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq == nil {
		return req, nil
	}
	return *uc.configLoader.MergeConfig(configReq, &req), nil
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service        domain.ComparisonService
	manifestReader domain.ManifestReader
	formatter      domain.CompareOutputFormatter
	configLoader   domain.CompareConfigurationLoader
	output         domain.ReportWriter
	status         io.Writer
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the comparison service
func (b *CompareUseCaseBuilder) WithService(service domain.ComparisonService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithManifestReader sets the manifest reader
func (b *CompareUseCaseBuilder) WithManifestReader(reader domain.ManifestReader) *CompareUseCaseBuilder {
	b.manifestReader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CompareUseCaseBuilder) WithConfigLoader(loader domain.CompareConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = loader
	return b
}

// WithOutputWriter sets the report writer
func (b *CompareUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = output
	return b
}

// WithStatusWriter sets where status messages go (stderr by default)
func (b *CompareUseCaseBuilder) WithStatusWriter(status io.Writer) *CompareUseCaseBuilder {
	b.status = status
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("comparison service is required")
	}
	if b.manifestReader == nil {
		return nil, fmt.Errorf("manifest reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewCompareUseCase(
		b.service,
		b.manifestReader,
		b.formatter,
		b.configLoader,
		b.output,
		b.status,
	), nil
}
