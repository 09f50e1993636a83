package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

type mockComparisonService struct {
	mock.Mock
}

func (m *mockComparisonService) ComparePairs(ctx context.Context, pairs []domain.FilePair, req domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, pairs, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareResponse), args.Error(1)
}

func (m *mockComparisonService) CompareFiles(ctx context.Context, pathA, pathB string) domain.PairResult {
	args := m.Called(ctx, pathA, pathB)
	return args.Get(0).(domain.PairResult)
}

func (m *mockComparisonService) CompareSources(ctx context.Context, sourceA, sourceB []byte) (*domain.SourceComparison, error) {
	args := m.Called(ctx, sourceA, sourceB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceComparison), args.Error(1)
}

func (m *mockComparisonService) Canonicalize(ctx context.Context, source []byte, withTree bool) (*domain.CanonicalForm, error) {
	args := m.Called(ctx, source, withTree)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CanonicalForm), args.Error(1)
}

func (m *mockComparisonService) CompareMatrix(ctx context.Context, files []string, req domain.MatrixRequest) (*domain.MatrixResponse, error) {
	args := m.Called(ctx, files, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResponse), args.Error(1)
}

type mockManifestReader struct {
	mock.Mock
}

func (m *mockManifestReader) ReadManifest(path string) ([]domain.FilePair, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FilePair), args.Error(1)
}

func (m *mockManifestReader) Parse(r io.Reader) ([]domain.FilePair, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FilePair), args.Error(1)
}

type mockCompareFormatter struct {
	mock.Mock
}

func (m *mockCompareFormatter) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockCompareFormatter) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func (m *mockCompareFormatter) FormatLine(result domain.PairResult) string {
	args := m.Called(result)
	return args.String(0)
}

type mockCompareConfigLoader struct {
	mock.Mock
}

func (m *mockCompareConfigLoader) LoadConfig(path string) (*domain.CompareRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareRequest), args.Error(1)
}

func (m *mockCompareConfigLoader) LoadDefaultConfig() *domain.CompareRequest {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.CompareRequest)
}

func (m *mockCompareConfigLoader) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	args := m.Called(base, override)
	return args.Get(0).(*domain.CompareRequest)
}

type mockFileCollector struct {
	mock.Mock
}

func (m *mockFileCollector) CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockMatrixFormatter struct {
	mock.Mock
}

func (m *mockMatrixFormatter) Write(response *domain.MatrixResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	args := m.Called(writer, outputPath, format, writeFunc)
	if err := args.Error(0); err != nil {
		return err
	}
	return writeFunc(writer)
}
