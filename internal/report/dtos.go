package report

import "time"

// SLAStatus is the per-ticket classification outcome.
type SLAStatus string

const (
	StatusOnTime     SLAStatus = "No prazo"
	StatusLate       SLAStatus = "Fora do prazo"
	StatusNoDeadline SLAStatus = "Sem prazo"
)

// Statuses in fixed display order.
var Statuses = []SLAStatus{StatusOnTime, StatusLate, StatusNoDeadline}

// Quality verdict labels.
const (
	VerdictApproved = "Aprovado"
	VerdictRejected = "Reprovado"
)

// TicketRecord is one normalized row with its derived fields. Raw keeps the
// original cells in header order so the processed sheet can carry columns the
// pipeline does not interpret.
type TicketRecord struct {
	ID         string
	Requester  string
	Resolution *time.Time
	Deadline   *time.Time
	DayDiff    *int
	Status     SLAStatus
	Answers    map[string]string
	Verdict    string
	Raw        []string
}

// SummaryRow is one line of the SLA summary table.
type SummaryRow struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RankingEntry is one line of the top-requester ranking.
type RankingEntry struct {
	Requester string `json:"requester"`
	Count     int    `json:"count"`
}

// QualityRow is one line of the quality summary: a question (or the synthetic
// overall row) and its conformance rate as a percentage of all rows.
type QualityRow struct {
	Question string  `json:"question"`
	Rate     float64 `json:"rate"`
}

// QualitySection holds the optional quality artifacts. Absent from the report
// when any checklist column is missing from the input.
type QualitySection struct {
	Rows     []QualityRow `json:"rows"`
	ChartPNG []byte       `json:"chart_png"`
}

// Report is the full artifact bundle for one submission. It is caller-owned;
// the service never retains a reference after returning it.
type Report struct {
	SourceFile  string
	GeneratedAt time.Time

	Headers []string
	Records []TicketRecord

	Summary  []SummaryRow
	Ranking  []RankingEntry
	Quality  *QualitySection
	SLAChart []byte

	Workbook []byte
}

// ProcessedHeaders returns the header row of the processed-data table:
// normalized input columns plus the derived ones.
func (r *Report) ProcessedHeaders() []string {
	headers := append([]string{}, r.Headers...)
	headers = append(headers, "Dias de diferença", "Status")
	if r.Quality != nil {
		headers = append(headers, "Qualidade Geral")
	}
	return headers
}

// ProcessedRows renders every record as display strings in processed-header
// order. Each input row appears exactly once, unparseable dates included.
func (r *Report) ProcessedRows() [][]string {
	rows := make([][]string, len(r.Records))
	for i, rec := range r.Records {
		row := append([]string{}, rec.Raw...)
		row = append(row, formatDayDiff(rec.DayDiff), string(rec.Status))
		if r.Quality != nil {
			row = append(row, rec.Verdict)
		}
		rows[i] = row
	}
	return rows
}
