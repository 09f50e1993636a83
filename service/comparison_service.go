package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/analyzer"
	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
	"github.com/coder26-cmd/anti-plagiarism/internal/version"
)

// ComparisonServiceImpl implements the domain.ComparisonService interface
type ComparisonServiceImpl struct {
	comparator *analyzer.Comparator
	reader     *FileReaderImpl
	progress   domain.ProgressManager
	logger     *slog.Logger
}

// NewComparisonService creates a new comparison service.
// progress and logger can be nil.
func NewComparisonService(progress domain.ProgressManager, logger *slog.Logger) *ComparisonServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComparisonServiceImpl{
		comparator: analyzer.NewComparator(),
		reader:     NewFileReader(),
		progress:   progress,
		logger:     logger,
	}
}

// ComparePairs compares each manifest pair. Results keep manifest order
// regardless of how many workers run.
func (s *ComparisonServiceImpl) ComparePairs(ctx context.Context, pairs []domain.FilePair, req domain.CompareRequest) (*domain.CompareResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	startTime := time.Now()
	results := make([]domain.PairResult, len(pairs))

	s.startProgress(len(pairs))

	tasks := make([]domain.ExecutableTask, len(pairs))
	for i, pair := range pairs {
		i, pair := i, pair
		tasks[i] = NewFuncTask(fmt.Sprintf("pair:%d", pair.Line), func(ctx context.Context) error {
			var result domain.PairResult
			if pair.Err != nil {
				result = failedResult(pair.PathA, pair.PathB, pair.Err)
			} else {
				result = s.CompareFiles(ctx, pair.PathA, pair.PathB)
			}
			result.Line = pair.Line
			result.Flagged = result.OK() && result.Score >= req.FlagThreshold
			if !result.OK() {
				s.logger.Warn("pair comparison failed",
					"line", pair.Line, "a", pair.PathA, "b", pair.PathB,
					"code", result.ErrorCode, "reason", result.Reason)
			}
			results[i] = result
			s.incrementProgress()
			return nil
		})
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(req.Workers)
	err := executor.Execute(ctx, tasks)
	s.completeProgress(err == nil)
	if err != nil {
		return nil, domain.NewAnalysisError("comparison cancelled", err)
	}

	response := &domain.CompareResponse{
		Results:       results,
		Summary:       domain.Summarize(results),
		FlagThreshold: req.FlagThreshold,
		GeneratedAt:   time.Now().Format(time.RFC3339),
		DurationMs:    time.Since(startTime).Milliseconds(),
		Version:       version.Short(),
	}

	s.logger.Info("batch comparison finished",
		"pairs", response.Summary.TotalPairs,
		"failed", response.Summary.Failed,
		"flagged", response.Summary.FlaggedPairs,
		"duration_ms", response.DurationMs)

	return response, nil
}

// CompareFiles compares two files on disk. Failures are reported in the
// result, never returned.
func (s *ComparisonServiceImpl) CompareFiles(ctx context.Context, pathA, pathB string) domain.PairResult {
	sourceA, err := s.reader.ReadFile(pathA)
	if err != nil {
		return failedResult(pathA, pathB, err)
	}
	sourceB, err := s.reader.ReadFile(pathB)
	if err != nil {
		return failedResult(pathA, pathB, err)
	}

	result, err := s.comparator.Compare(ctx, sourceA, sourceB)
	if err != nil {
		return failedResult(pathA, pathB, classifyCompareError(err, pathA, pathB))
	}

	return domain.PairResult{
		PathA:      pathA,
		PathB:      pathB,
		Status:     domain.PairStatusOK,
		Score:      result.Score,
		Similarity: result.Similarity,
		Distance:   result.Distance,
	}
}

// CompareSources compares two in-memory sources
func (s *ComparisonServiceImpl) CompareSources(ctx context.Context, sourceA, sourceB []byte) (*domain.SourceComparison, error) {
	result, err := s.comparator.Compare(ctx, sourceA, sourceB)
	if err != nil {
		return nil, classifyCompareError(err, "source_a", "source_b")
	}
	return &domain.SourceComparison{
		Score:      result.Score,
		Similarity: result.Similarity,
		Distance:   result.Distance,
		CanonicalA: result.CanonicalA,
		CanonicalB: result.CanonicalB,
	}, nil
}

// Canonicalize normalizes a single source
func (s *ComparisonServiceImpl) Canonicalize(ctx context.Context, source []byte, withTree bool) (*domain.CanonicalForm, error) {
	norm, err := s.comparator.Normalize(ctx, source)
	if err != nil {
		return nil, classifyCompareError(err, "source", "source")
	}

	form := &domain.CanonicalForm{
		Text:        norm.Canonical,
		Identifiers: []domain.IdentifierAlias{},
		Docstrings:  norm.Docstrings,
	}
	for _, entry := range norm.Names.Entries() {
		form.Identifiers = append(form.Identifiers, domain.IdentifierAlias{Name: entry.Name, Alias: entry.Alias})
	}

	if withTree {
		var sb strings.Builder
		norm.Tree.Accept(parser.NewPrinterVisitor(&sb))
		form.Tree = sb.String()
	}
	return form, nil
}

// matrixEntry is the normalized form of one file in a matrix run
type matrixEntry struct {
	path      string
	canonical string
	err       error
}

// CompareMatrix compares every unordered pair of files. Each file is
// normalized once; pairs then only run the scorer.
func (s *ComparisonServiceImpl) CompareMatrix(ctx context.Context, files []string, req domain.MatrixRequest) (*domain.MatrixResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	startTime := time.Now()
	entries := make([]matrixEntry, len(files))
	pairTotal := len(files) * (len(files) - 1) / 2

	s.startProgress(len(files) + pairTotal)

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(req.Workers)

	tasks := make([]domain.ExecutableTask, len(files))
	for i, path := range files {
		i, path := i, path
		tasks[i] = NewFuncTask("normalize:"+path, func(ctx context.Context) error {
			entry := matrixEntry{path: path}
			source, err := s.reader.ReadFile(path)
			if err == nil {
				entry.canonical, err = s.comparator.Canonicalize(ctx, source)
				if err != nil {
					err = classifyCompareError(err, path, path)
				}
			}
			if err != nil {
				entry.err = err
				s.logger.Warn("file skipped", "path", path, "code", domain.ErrorCode(err), "error", err)
			}
			entries[i] = entry
			s.incrementProgress()
			return nil
		})
	}
	if err := executor.Execute(ctx, tasks); err != nil {
		s.completeProgress(false)
		return nil, domain.NewAnalysisError("matrix comparison cancelled", err)
	}

	var (
		valid    []matrixEntry
		failures []domain.FileFailure
	)
	for _, entry := range entries {
		if entry.err != nil {
			failures = append(failures, domain.FileFailure{
				Path:      entry.path,
				Reason:    entry.err.Error(),
				ErrorCode: domain.ErrorCode(entry.err),
			})
			continue
		}
		valid = append(valid, entry)
	}

	var (
		mu    sync.Mutex
		pairs []domain.PairResult
	)
	compared := len(valid) * (len(valid) - 1) / 2

	// One task per row keeps task count linear in the number of files
	rowTasks := make([]domain.ExecutableTask, 0, len(valid))
	for i := range valid {
		i := i
		rowTasks = append(rowTasks, NewFuncTask(fmt.Sprintf("row:%d", i), func(ctx context.Context) error {
			var row []domain.PairResult
			for j := i + 1; j < len(valid); j++ {
				result := s.comparator.CompareCanonical(valid[i].canonical, valid[j].canonical)
				s.incrementProgress()
				if result.Score < req.MinScore {
					continue
				}
				row = append(row, domain.PairResult{
					PathA:      valid[i].path,
					PathB:      valid[j].path,
					Status:     domain.PairStatusOK,
					Score:      result.Score,
					Similarity: result.Similarity,
					Distance:   result.Distance,
					Flagged:    result.Score >= req.FlagThreshold,
				})
			}
			mu.Lock()
			pairs = append(pairs, row...)
			mu.Unlock()
			return nil
		}))
	}
	err := executor.Execute(ctx, rowTasks)
	s.completeProgress(err == nil)
	if err != nil {
		return nil, domain.NewAnalysisError("matrix comparison cancelled", err)
	}

	SortPairsByScore(pairs)
	if req.MaxResults > 0 && len(pairs) > req.MaxResults {
		pairs = pairs[:req.MaxResults]
	}
	if pairs == nil {
		pairs = []domain.PairResult{}
	}

	summary := domain.MatrixSummary{
		FilesAnalyzed: len(valid),
		FilesFailed:   len(failures),
		PairsCompared: compared,
		PairsReported: len(pairs),
	}
	for _, p := range pairs {
		if p.Flagged {
			summary.FlaggedPairs++
		}
		if p.Score > summary.MaxScore {
			summary.MaxScore = p.Score
		}
	}

	s.logger.Info("matrix comparison finished",
		"files", len(files), "failed", len(failures),
		"pairs", compared, "reported", len(pairs))

	return &domain.MatrixResponse{
		Files:       files,
		Pairs:       pairs,
		Failures:    failures,
		Summary:     summary,
		GeneratedAt: time.Now().Format(time.RFC3339),
		DurationMs:  time.Since(startTime).Milliseconds(),
		Version:     version.Short(),
	}, nil
}

// SortPairsByScore orders pairs by score descending, then by paths
func SortPairsByScore(pairs []domain.PairResult) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].PathA != pairs[j].PathA {
			return pairs[i].PathA < pairs[j].PathA
		}
		return pairs[i].PathB < pairs[j].PathB
	})
}

// classifyCompareError maps comparator failures onto domain errors, naming
// the file of the failing side.
func classifyCompareError(err error, nameA, nameB string) error {
	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	name := nameA
	var sideErr *analyzer.SideError
	if errors.As(err, &sideErr) && sideErr.Side == analyzer.SideB {
		name = nameB
	}

	switch {
	case errors.Is(err, parser.ErrSyntax):
		return domain.NewParseError(name, err)
	case errors.Is(err, os.ErrNotExist):
		return domain.NewFileNotFoundError(name, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.NewAnalysisError("comparison cancelled", err)
	default:
		return domain.NewAnalysisError(fmt.Sprintf("failed to compare %s", name), err)
	}
}

func failedResult(pathA, pathB string, err error) domain.PairResult {
	return domain.PairResult{
		PathA:     pathA,
		PathB:     pathB,
		Status:    domain.PairStatusFailed,
		Reason:    err.Error(),
		ErrorCode: domain.ErrorCode(err),
	}
}

func (s *ComparisonServiceImpl) startProgress(total int) {
	if s.progress == nil {
		return
	}
	s.progress.Initialize(total)
	s.progress.Start()
}

func (s *ComparisonServiceImpl) incrementProgress() {
	if s.progress != nil {
		s.progress.Increment()
	}
}

func (s *ComparisonServiceImpl) completeProgress(success bool) {
	if s.progress != nil {
		s.progress.Complete(success)
	}
}
