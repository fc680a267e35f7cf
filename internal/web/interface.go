package web

import (
	"context"
	"time"

	"github.com/suportelab/ticket-sla-report/internal/report"
	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

// Cacher defines the interface for cache operations. Lifecycle is owned by
// the caller that built the concrete cache.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ReportService runs the full analytics pipeline for one submission.
type ReportService interface {
	Generate(ctx context.Context, filename string, data []byte) (*report.Report, error)
}

// RunHistory exposes the persisted submission history.
type RunHistory interface {
	LatestRuns(ctx context.Context, limit int) ([]models.ReportRun, error)
}
