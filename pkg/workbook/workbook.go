// Package workbook writes the multi-sheet report spreadsheet with excelize.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/suportelab/ticket-sla-report/internal/report"
)

// Writer composes ordered named sheets into one xlsx file and can embed a
// native pie chart. It satisfies report.WorkbookWriter.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteSheets writes each sheet in order, header row first. When pie is
// non-nil and the target sheet holds at least one data row in the requested
// range, a pie chart is anchored inside that sheet; a short range shrinks the
// binding instead of failing.
func (w *Writer) WriteSheets(sheets []report.Sheet, pie *report.PieSpec) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
			}
		}

		if err := writeRow(f, sheet.Name, 1, sheet.Headers); err != nil {
			return nil, err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	if pie != nil {
		if err := w.embedPie(f, sheets, pie); err != nil {
			return nil, fmt.Errorf("embed pie chart: %w", err)
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Writer) embedPie(f *excelize.File, sheets []report.Sheet, pie *report.PieSpec) error {
	var target *report.Sheet
	for i := range sheets {
		if sheets[i].Name == pie.Sheet {
			target = &sheets[i]
			break
		}
	}
	if target == nil {
		return nil
	}

	// Clamp the binding to the rows that exist; an empty range means no
	// chart, not an error.
	lastRow := pie.LastRow
	if maxRow := len(target.Rows) + 1; lastRow > maxRow {
		lastRow = maxRow
	}
	if lastRow < pie.FirstRow {
		return nil
	}

	categories, err := rangeRef(pie.Sheet, pie.LabelCol, pie.FirstRow, lastRow)
	if err != nil {
		return err
	}
	values, err := rangeRef(pie.Sheet, pie.ValueCol, pie.FirstRow, lastRow)
	if err != nil {
		return err
	}

	return f.AddChart(pie.Sheet, pie.AnchorRef, &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%q", pie.Title),
			Categories: categories,
			Values:     values,
		}},
		Title: []excelize.RichTextRun{{Text: pie.Title}},
	})
}

func rangeRef(sheet string, col, firstRow, lastRow int) (string, error) {
	start, err := excelize.CoordinatesToCellName(col, firstRow, true)
	if err != nil {
		return "", fmt.Errorf("chart range: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(col, lastRow, true)
	if err != nil {
		return "", fmt.Errorf("chart range: %w", err)
	}
	return fmt.Sprintf("%s!%s:%s", sheet, start, end), nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell ref for row %d: %w", row, err)
	}

	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", row, sheet, err)
	}
	return nil
}
