package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

type ReportRunRepository struct {
	db *sql.DB
}

func NewReportRunRepository(db *sql.DB) *ReportRunRepository {
	return &ReportRunRepository{db: db}
}

// Migrate creates the run-history table when absent.
func (r *ReportRunRepository) Migrate(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS report_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_file TEXT NOT NULL,
			total_rows INTEGER NOT NULL,
			on_time INTEGER NOT NULL,
			late INTEGER NOT NULL,
			no_deadline INTEGER NOT NULL,
			quality_active INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate report_runs: %w", err)
	}
	return nil
}

// InsertRun appends one history row.
func (r *ReportRunRepository) InsertRun(ctx context.Context, run models.ReportRun) error {
	const query = `
		INSERT INTO report_runs
			(source_file, total_rows, on_time, late, no_deadline, quality_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.SourceFile, run.TotalRows, run.OnTime, run.Late, run.NoDeadline,
		run.QualityActive, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}

// LatestRuns returns the most recent history rows, newest first.
func (r *ReportRunRepository) LatestRuns(ctx context.Context, limit int) ([]models.ReportRun, error) {
	const query = `
		SELECT id, source_file, total_rows, on_time, late, no_deadline, quality_active, created_at
		FROM report_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query LatestRuns: %w", err)
	}
	defer rows.Close()

	var results []models.ReportRun
	for rows.Next() {
		var run models.ReportRun
		if err := rows.Scan(&run.ID, &run.SourceFile, &run.TotalRows, &run.OnTime,
			&run.Late, &run.NoDeadline, &run.QualityActive, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan LatestRuns row: %w", err)
		}
		results = append(results, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LatestRuns: %w", err)
	}
	return results, nil
}
