package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suportelab/ticket-sla-report/internal/ingest"
	"github.com/suportelab/ticket-sla-report/internal/repository/models"
)

const (
	dbTimeout = 1 * time.Second

	// Sheet names of the output workbook, in order.
	SheetProcessed = "Dados Processados"
	SheetSummary   = "Porcentagens"
	SheetRanking   = "Ranking"
	SheetQuality   = "Qualidade"

	slaChartTitle     = "Distribuição Percentual dos Tickets"
	pieChartTitle     = "Distribuição de Tickets"
	qualityChartTitle = "Conformidade por Pergunta"
)

var slaChartColors = []string{"green", "red", "gray"}

// Service is the report facade: it runs the whole pipeline for one submitted
// file and returns a caller-owned artifact bundle. Processing is
// all-or-nothing; no partial artifact survives a failure.
type Service struct {
	charts   ChartRenderer
	workbook WorkbookWriter
	runs     RunRepository
	logger   *zap.Logger
	policy   ClassifyPolicy
}

// NewService creates a new report Service instance.
func NewService(charts ChartRenderer, workbook WorkbookWriter, runs RunRepository, logger *zap.Logger) *Service {
	if charts == nil || workbook == nil {
		panic("chart renderer and workbook writer must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &Service{
		charts:   charts,
		workbook: workbook,
		runs:     runs,
		logger:   logger,
		policy:   DeadlineFirst,
	}
}

// Generate processes one uploaded ticket export end to end: load, normalize,
// resolve dates, classify, aggregate, score quality when the checklist is
// present, render charts, assemble the workbook.
func (s *Service) Generate(ctx context.Context, filename string, data []byte) (*Report, error) {
	table, err := ingest.Load(filename, data)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", filename, err)
	}

	if err := ingest.NormalizeColumns(table); err != nil {
		return nil, err
	}

	qualityActive := ingest.HasQualityColumns(table)
	records := s.buildRecords(table, qualityActive)

	rep := &Report{
		SourceFile:  filename,
		GeneratedAt: time.Now().UTC(),
		Headers:     append([]string{}, table.Headers...),
		Records:     records,
		Summary:     Summarize(records),
		Ranking:     RankRequesters(records),
	}
	if qualityActive {
		rep.Quality = &QualitySection{
			Rows: ScoreQuality(records, ingest.QualityColumns),
		}
	}

	if err := s.renderCharts(ctx, rep); err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	workbook, err := s.workbook.WriteSheets(s.buildSheets(rep), s.pieSpec())
	if err != nil {
		return nil, fmt.Errorf("assemble workbook: %w", err)
	}
	rep.Workbook = workbook

	s.recordRun(ctx, rep)

	s.logger.Info("report generated",
		zap.String("file", filename),
		zap.Int("rows", len(records)),
		zap.Bool("quality", qualityActive))

	return rep, nil
}

func (s *Service) buildRecords(table *ingest.Table, qualityActive bool) []TicketRecord {
	idCol := table.ColumnIndex(ingest.ColTicketID)
	resCol := table.ColumnIndex(ingest.ColResolution)
	dlCol := table.ColumnIndex(ingest.ColDeadline)
	reqCol := table.ColumnIndex(ingest.ColRequester)

	records := make([]TicketRecord, 0, len(table.Rows))
	for i := range table.Rows {
		raw := make([]string, len(table.Headers))
		for j := range table.Headers {
			raw[j] = table.Cell(i, j)
		}

		rec := TicketRecord{
			ID:        raw[idCol],
			Requester: raw[reqCol],
			Raw:       raw,
		}

		rec.Resolution = ingest.ParseResolutionDate(raw[resCol])
		if rec.Resolution == nil && raw[resCol] != "" {
			s.logger.Warn("unparseable resolution date",
				zap.String("ticket", rec.ID),
				zap.String("value", raw[resCol]))
		}
		rec.Deadline = ingest.ParseDeadlineDate(raw[dlCol])
		if rec.Deadline == nil && raw[dlCol] != "" {
			s.logger.Warn("unparseable deadline date",
				zap.String("ticket", rec.ID),
				zap.String("value", raw[dlCol]))
		}

		raw[resCol] = formatDate(rec.Resolution, ingest.ResolutionDisplayFormat)
		raw[dlCol] = formatDate(rec.Deadline, ingest.DeadlineDisplayFormat)

		rec.DayDiff = DayDifference(rec.Resolution, rec.Deadline)
		rec.Status = Classify(rec.Resolution, rec.Deadline, s.policy)

		if qualityActive {
			rec.Answers = make(map[string]string, len(ingest.QualityColumns))
			for _, q := range ingest.QualityColumns {
				rec.Answers[q] = table.Cell(i, table.ColumnIndex(q))
			}
			rec.Verdict = Verdict(rec.Answers, ingest.QualityColumns)
		}

		records = append(records, rec)
	}
	return records
}

// renderCharts draws the SLA bar chart and, when active, the quality chart.
// The two renders are independent, so they run concurrently.
func (s *Service) renderCharts(ctx context.Context, rep *Report) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		labels := make([]string, len(Statuses))
		values := make([]float64, len(Statuses))
		for i, row := range rep.Summary[:len(Statuses)] {
			labels[i] = row.Status
			values[i] = row.Percentage
		}
		png, err := s.charts.Render(ChartSpec{
			Kind:       BarSeries,
			Title:      slaChartTitle,
			ValueLabel: "Porcentagem (%)",
			Labels:     labels,
			Values:     values,
			Colors:     slaChartColors,
		})
		if err != nil {
			return err
		}
		rep.SLAChart = png
		return nil
	})

	if rep.Quality != nil {
		g.Go(func() error {
			questionRows := rep.Quality.Rows[:len(rep.Quality.Rows)-1]
			labels := make([]string, len(questionRows))
			values := make([]float64, len(questionRows))
			for i, row := range questionRows {
				labels[i] = row.Question
				values[i] = row.Rate
			}
			png, err := s.charts.Render(ChartSpec{
				Kind:       HorizontalBarSeries,
				Title:      qualityChartTitle,
				ValueLabel: "Conformidade (%)",
				Labels:     labels,
				Values:     values,
				Annotate:   true,
			})
			if err != nil {
				return err
			}
			rep.Quality.ChartPNG = png
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) buildSheets(rep *Report) []Sheet {
	sheets := []Sheet{
		{
			Name:    SheetProcessed,
			Headers: rep.ProcessedHeaders(),
			Rows:    rep.ProcessedRows(),
		},
		{
			Name:    SheetSummary,
			Headers: []string{"Status", "Porcentagem (%)", "Quantidade"},
			Rows:    summarySheetRows(rep.Summary),
		},
		{
			Name:    SheetRanking,
			Headers: []string{ingest.ColRequester, "Quantidade"},
			Rows:    rankingSheetRows(rep.Ranking),
		},
	}

	if rep.Quality != nil {
		sheets = append(sheets, Sheet{
			Name:    SheetQuality,
			Headers: []string{"Pergunta", "Conformidade (%)"},
			Rows:    qualitySheetRows(rep.Quality.Rows),
		})
	}
	return sheets
}

// pieSpec binds the embedded pie chart to the summary sheet's own status and
// count columns, excluding the Total row.
func (s *Service) pieSpec() *PieSpec {
	return &PieSpec{
		Sheet:     SheetSummary,
		Title:     pieChartTitle,
		LabelCol:  1,
		ValueCol:  3,
		FirstRow:  2,
		LastRow:   1 + len(Statuses),
		AnchorRef: "E5",
	}
}

func (s *Service) recordRun(ctx context.Context, rep *Report) {
	if s.runs == nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	run := models.ReportRun{
		SourceFile:    rep.SourceFile,
		TotalRows:     len(rep.Records),
		QualityActive: rep.Quality != nil,
		CreatedAt:     rep.GeneratedAt,
	}
	for _, row := range rep.Summary {
		switch row.Status {
		case string(StatusOnTime):
			run.OnTime = row.Count
		case string(StatusLate):
			run.Late = row.Count
		case string(StatusNoDeadline):
			run.NoDeadline = row.Count
		}
	}

	if err := s.runs.InsertRun(dbCtx, run); err != nil {
		s.logger.Error("failed to record report run", zap.Error(err))
	}
}

func summarySheetRows(summary []SummaryRow) [][]string {
	rows := make([][]string, len(summary))
	for i, row := range summary {
		rows[i] = []string{row.Status, fmt.Sprintf("%.1f", row.Percentage), fmt.Sprintf("%d", row.Count)}
	}
	return rows
}

func rankingSheetRows(ranking []RankingEntry) [][]string {
	rows := make([][]string, len(ranking))
	for i, entry := range ranking {
		rows[i] = []string{entry.Requester, fmt.Sprintf("%d", entry.Count)}
	}
	return rows
}

func qualitySheetRows(quality []QualityRow) [][]string {
	rows := make([][]string, len(quality))
	for i, row := range quality {
		rows[i] = []string{row.Question, fmt.Sprintf("%.2f", row.Rate)}
	}
	return rows
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
