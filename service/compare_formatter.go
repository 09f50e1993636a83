package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/analyzer"
)

// FailedMarker replaces the score of a pair that could not be compared
const FailedMarker = "failed"

// CompareFormatterImpl implements the CompareOutputFormatter interface
type CompareFormatterImpl struct {
	utils *FormatUtils
}

// NewCompareFormatter creates a new compare formatter
func NewCompareFormatter() *CompareFormatterImpl {
	return &CompareFormatterImpl{utils: NewFormatUtils()}
}

// Format formats the response according to the specified format
func (f *CompareFormatterImpl) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the formatted output to the writer
func (f *CompareFormatterImpl) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("response cannot be nil", nil)
	}

	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatLine formats one result as "<a> <-> <b> = <score|failed>"
func (f *CompareFormatterImpl) FormatLine(result domain.PairResult) string {
	value := FailedMarker
	if result.OK() {
		value = analyzer.FormatScore(result.Score)
	}
	return fmt.Sprintf("%s <-> %s = %s", result.PathA, result.PathB, value)
}

// FormatSummary renders the human-readable batch summary shown on stderr
func (f *CompareFormatterImpl) FormatSummary(response *domain.CompareResponse) string {
	s := response.Summary
	var sb strings.Builder
	sb.WriteString(f.utils.FormatSectionHeader("Summary"))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs", s.TotalPairs))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Compared", s.Succeeded))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Failed", s.Failed))
	if s.Succeeded > 0 {
		sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Average score", analyzer.FormatScore(analyzer.RoundScore(s.AverageScore))))
		sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Max score", analyzer.FormatScore(s.MaxScore)))
	}
	flagged := fmt.Sprintf("%d (score >= %s)", s.FlaggedPairs, analyzer.FormatScore(response.FlagThreshold))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Flagged", flagged))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Duration", f.utils.FormatDuration(response.DurationMs)))
	return sb.String()
}

func (f *CompareFormatterImpl) writeText(response *domain.CompareResponse, writer io.Writer) error {
	for _, result := range response.Results {
		if _, err := fmt.Fprintln(writer, f.FormatLine(result)); err != nil {
			return domain.NewOutputError("failed to write report line", err)
		}
	}
	return nil
}

func (f *CompareFormatterImpl) writeCSV(response *domain.CompareResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"line", "path_a", "path_b", "status", "score", "distance", "flagged", "error_code", "reason"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, r := range response.Results {
		if err := w.Write(pairRecord(r)); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func pairRecord(r domain.PairResult) []string {
	score, distance := "", ""
	if r.OK() {
		score = analyzer.FormatScore(r.Score)
		distance = strconv.Itoa(r.Distance)
	}
	line := ""
	if r.Line > 0 {
		line = strconv.Itoa(r.Line)
	}
	return []string{
		line,
		r.PathA,
		r.PathB,
		string(r.Status),
		score,
		distance,
		strconv.FormatBool(r.Flagged),
		r.ErrorCode,
		r.Reason,
	}
}
