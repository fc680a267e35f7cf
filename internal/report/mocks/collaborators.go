package mocks

import (
	"context"
	"errors"

	"github.com/suportelab/ticket-sla-report/internal/report"
	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

// MockChartRenderer is a mock implementation of the ChartRenderer interface
// for testing the report service.
type MockChartRenderer struct {
	RenderFunc func(spec report.ChartSpec) ([]byte, error)
}

// Render implements the ChartRenderer interface
func (m *MockChartRenderer) Render(spec report.ChartSpec) ([]byte, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(spec)
	}
	return []byte("png"), nil
}

// MockWorkbookWriter is a mock implementation of the WorkbookWriter interface
// for testing the report service.
type MockWorkbookWriter struct {
	WriteSheetsFunc func(sheets []report.Sheet, pie *report.PieSpec) ([]byte, error)
}

// WriteSheets implements the WorkbookWriter interface
func (m *MockWorkbookWriter) WriteSheets(sheets []report.Sheet, pie *report.PieSpec) ([]byte, error) {
	if m.WriteSheetsFunc != nil {
		return m.WriteSheetsFunc(sheets, pie)
	}
	return []byte("xlsx"), nil
}

// MockRunRepository is a mock implementation of the RunRepository interface
// for testing the report service.
type MockRunRepository struct {
	InsertRunFunc  func(ctx context.Context, run models.ReportRun) error
	LatestRunsFunc func(ctx context.Context, limit int) ([]models.ReportRun, error)
}

// InsertRun implements the RunRepository interface
func (m *MockRunRepository) InsertRun(ctx context.Context, run models.ReportRun) error {
	if m.InsertRunFunc != nil {
		return m.InsertRunFunc(ctx, run)
	}
	return nil
}

// LatestRuns implements the RunRepository interface
func (m *MockRunRepository) LatestRuns(ctx context.Context, limit int) ([]models.ReportRun, error) {
	if m.LatestRunsFunc != nil {
		return m.LatestRunsFunc(ctx, limit)
	}
	return nil, errors.New("LatestRunsFunc not implemented")
}
