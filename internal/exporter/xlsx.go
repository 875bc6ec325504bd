package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Sheet names of the presentation workbook.
const (
	MetricsSheet         = "Metrics"
	RecommendationsSheet = "Recommendations"
)

// XLSXContentType is the MIME type of the presentation workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WritePresentation writes a workbook with the metrics row and the
// recommendation rows to w.
func WritePresentation(w io.Writer, m domain.Metrics, recs []domain.Recommendation) error {
	f, err := BuildPresentation(m, recs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildPresentation assembles the workbook in memory. The caller closes it.
func BuildPresentation(m domain.Metrics, recs []domain.Recommendation) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", MetricsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(RecommendationsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", RecommendationsSheet, err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	metricRows := [][]interface{}{metricsCells(m)}
	if err := writeSheet(f, MetricsSheet, MetricsColumns, metricRows, header); err != nil {
		f.Close()
		return nil, err
	}

	recRows := make([][]interface{}, 0, len(recs))
	for _, r := range recs {
		recRows = append(recRows, recommendationCells(r))
	}
	if err := writeSheet(f, RecommendationsSheet, RecommendationColumns, recRows, header); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]interface{}, headerStyle int) error {
	head := make([]interface{}, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
