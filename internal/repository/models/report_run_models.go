package models

import "time"

// ReportRun is one row of the run history: which file was processed and how
// its tickets classified.
type ReportRun struct {
	ID            int64     `json:"id"`
	SourceFile    string    `json:"source_file"`
	TotalRows     int       `json:"total_rows"`
	OnTime        int       `json:"on_time"`
	Late          int       `json:"late"`
	NoDeadline    int       `json:"no_deadline"`
	QualityActive bool      `json:"quality_active"`
	CreatedAt     time.Time `json:"created_at"`
}
