package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/analyzer"
)

// MatrixFormatterImpl implements the MatrixOutputFormatter interface
type MatrixFormatterImpl struct {
	utils *FormatUtils
}

// NewMatrixFormatter creates a new matrix formatter
func NewMatrixFormatter() *MatrixFormatterImpl {
	return &MatrixFormatterImpl{utils: NewFormatUtils()}
}

// Write writes the formatted output to the writer. Text and table both
// render the table.
func (f *MatrixFormatterImpl) Write(response *domain.MatrixResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("response cannot be nil", nil)
	}

	switch format {
	case domain.OutputFormatText, domain.OutputFormatTable:
		return f.writeTable(response, writer)
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

func (f *MatrixFormatterImpl) writeTable(response *domain.MatrixResponse, writer io.Writer) error {
	s := response.Summary
	if _, err := io.WriteString(writer, f.utils.FormatMainHeader("Similarity Matrix")); err != nil {
		return domain.NewOutputError("failed to write header", err)
	}

	if len(response.Pairs) == 0 {
		fmt.Fprintln(writer, "No pairs at or above the minimum score.")
	} else {
		table := tablewriter.NewWriter(writer)
		table.SetHeader([]string{"#", "File A", "File B", "Score", "Distance", "Flag"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_CENTER,
		})

		for i, p := range response.Pairs {
			flag := ""
			if p.Flagged {
				flag = "!"
			}
			table.Append([]string{
				strconv.Itoa(i + 1),
				p.PathA,
				p.PathB,
				analyzer.FormatScore(p.Score),
				strconv.Itoa(p.Distance),
				flag,
			})
		}
		table.Render()
	}

	fmt.Fprintln(writer)
	fmt.Fprint(writer, f.utils.FormatSectionHeader("Summary"))
	fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, "Files", s.FilesAnalyzed))
	fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, "Skipped", s.FilesFailed))
	fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, "Pairs compared", s.PairsCompared))
	fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, "Pairs reported", s.PairsReported))
	fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, "Flagged", s.FlaggedPairs))

	if len(response.Failures) > 0 {
		fmt.Fprintln(writer)
		fmt.Fprint(writer, f.utils.FormatSectionHeader("Skipped files"))
		for _, failure := range response.Failures {
			fmt.Fprint(writer, f.utils.FormatLabelWithIndent(SectionPadding, failure.Path, failure.ErrorCode))
		}
	}
	return nil
}

func (f *MatrixFormatterImpl) writeCSV(response *domain.MatrixResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"path_a", "path_b", "score", "distance", "flagged"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, p := range response.Pairs {
		record := []string{
			p.PathA,
			p.PathB,
			analyzer.FormatScore(p.Score),
			strconv.Itoa(p.Distance),
			strconv.FormatBool(p.Flagged),
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}
