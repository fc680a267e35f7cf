package report

import (
	"context"

	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

// SeriesKind selects the chart shape.
type SeriesKind int

const (
	BarSeries SeriesKind = iota
	HorizontalBarSeries
)

// ChartSpec is one labeled series plus styling hints. Labels and Values are
// parallel; Colors may be nil or shorter than the series, renderers fall back
// to a default.
type ChartSpec struct {
	Kind       SeriesKind
	Title      string
	ValueLabel string
	Labels     []string
	Values     []float64
	Colors     []string
	Annotate   bool
}

// ChartRenderer turns a series into an inline-embeddable PNG.
type ChartRenderer interface {
	Render(spec ChartSpec) ([]byte, error)
}

// Sheet is one named tab of the output workbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// PieSpec asks the writer to embed a native pie chart inside one sheet,
// bound to that sheet's own label and value columns (1-based, header on
// row 1, data rows FirstRow..LastRow).
type PieSpec struct {
	Sheet     string
	Title     string
	LabelCol  int
	ValueCol  int
	FirstRow  int
	LastRow   int
	AnchorRef string
}

// WorkbookWriter composes ordered named sheets into a single spreadsheet
// file. Pie may be nil.
type WorkbookWriter interface {
	WriteSheets(sheets []Sheet, pie *PieSpec) ([]byte, error)
}

// RunRepository persists one history row per generated report.
type RunRepository interface {
	InsertRun(ctx context.Context, run models.ReportRun) error
	LatestRuns(ctx context.Context, limit int) ([]models.ReportRun, error)
}
