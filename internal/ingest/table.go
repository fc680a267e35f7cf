package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDecode            = errors.New("failed to decode file")
	ErrEmptyTable        = errors.New("table has no header row")
)

// Table is a raw tabular import: one header row plus data rows. Rows may be
// ragged; Cell pads missing trailing cells with the empty string.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of a header, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Load sniffs the declared filename extension and parses the payload into a
// Table. CSV input is decoded as UTF-8 with an ISO-8859-1 fallback.
func Load(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return loadCSV(data)
	case ".xls":
		return loadXLS(data)
	case ".xlsx":
		return loadXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func loadCSV(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return tableFromRows(rows)
}

// loadXLS reads the first sheet of a legacy BIFF workbook. Extra sheets are
// ignored.
func loadXLS(data []byte) (*Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrEmptyTable
	}
	rows := make([][]string, int(sheet.MaxRow)+1)
	for i := range rows {
		rows[i] = xlsRow(sheet, i)
	}
	return tableFromRows(rows)
}

// xlsRow collects the cells of one row. Rows missing from the sheet's row
// map make the reader panic, those come back empty.
func xlsRow(sheet *xls.WorkSheet, idx int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()
	row := sheet.Row(idx)
	cells = make([]string, 0, row.LastCol())
	for col := 0; col < row.LastCol(); col++ {
		cells = append(cells, row.Col(col))
	}
	return cells
}

func loadXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return &Table{Headers: headers, Rows: rows[1:]}, nil
}
