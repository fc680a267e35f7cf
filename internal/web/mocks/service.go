package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/suportelab/ticket-sla-report/internal/report"
	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

// MockReportService is a mock implementation of the ReportService interface
// for testing the handler layer.
type MockReportService struct {
	GenerateFunc func(ctx context.Context, filename string, data []byte) (*report.Report, error)
}

// Generate implements the ReportService interface
func (m *MockReportService) Generate(ctx context.Context, filename string, data []byte) (*report.Report, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, filename, data)
	}
	return nil, errors.New("GenerateFunc not implemented")
}

// MockRunHistory is a mock implementation of the RunHistory interface
// for testing the handler layer.
type MockRunHistory struct {
	LatestRunsFunc func(ctx context.Context, limit int) ([]models.ReportRun, error)
}

// LatestRuns implements the RunHistory interface
func (m *MockRunHistory) LatestRuns(ctx context.Context, limit int) ([]models.ReportRun, error) {
	if m.LatestRunsFunc != nil {
		return m.LatestRunsFunc(ctx, limit)
	}
	return nil, errors.New("LatestRunsFunc not implemented")
}

// MockCacher is a mock implementation of the Cacher interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockCacher struct {
	GetFunc    func(ctx context.Context, key string, dest any) error
	SetFunc    func(ctx context.Context, key string, value any, expiration time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

// Get implements the Cacher interface
func (m *MockCacher) Get(ctx context.Context, key string, dest any) error {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return errors.New("cache miss")
}

// Set implements the Cacher interface
func (m *MockCacher) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

// Delete implements the Cacher interface
func (m *MockCacher) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}
