package web

import (
	"encoding/base64"
	"time"

	"github.com/suportelab/ticket-sla-report/internal/report"
)

// ReportPayload is the presentation bundle the report view consumes. Charts
// travel as base64 PNG so they can be inlined into an <img> tag.
type ReportPayload struct {
	SourceFile     string                `json:"source_file"`
	GeneratedAt    time.Time             `json:"generated_at"`
	TotalRows      int                   `json:"total_rows"`
	PreviewHeaders []string              `json:"preview_headers"`
	PreviewRows    [][]string            `json:"preview_rows"`
	Summary        []report.SummaryRow   `json:"summary"`
	Ranking        []report.RankingEntry `json:"ranking"`
	Quality        *QualityPayload       `json:"quality,omitempty"`
	SLAChart       string                `json:"sla_chart"`
}

// QualityPayload mirrors the optional quality section.
type QualityPayload struct {
	Rows  []report.QualityRow `json:"rows"`
	Chart string              `json:"chart"`
}

func newReportPayload(rep *report.Report, previewRows int) *ReportPayload {
	rows := rep.ProcessedRows()
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}

	payload := &ReportPayload{
		SourceFile:     rep.SourceFile,
		GeneratedAt:    rep.GeneratedAt,
		TotalRows:      len(rep.Records),
		PreviewHeaders: rep.ProcessedHeaders(),
		PreviewRows:    rows,
		Summary:        rep.Summary,
		Ranking:        rep.Ranking,
		SLAChart:       base64.StdEncoding.EncodeToString(rep.SLAChart),
	}
	if rep.Quality != nil {
		payload.Quality = &QualityPayload{
			Rows:  rep.Quality.Rows,
			Chart: base64.StdEncoding.EncodeToString(rep.Quality.ChartPNG),
		}
	}
	return payload
}
