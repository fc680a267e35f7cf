package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/suportelab/ticket-sla-report/internal/ingest"
	"github.com/suportelab/ticket-sla-report/internal/report"
	reportmocks "github.com/suportelab/ticket-sla-report/internal/report/mocks"
	"github.com/suportelab/ticket-sla-report/internal/staging"
	"github.com/suportelab/ticket-sla-report/internal/web"
	"github.com/suportelab/ticket-sla-report/pkg/chart"
	"github.com/suportelab/ticket-sla-report/pkg/workbook"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func qualityCSV() []byte {
	header := "ID do ticket,Hora da resolução,Primeiro prazo,Solicitante," +
		strings.Join(ingest.QualityColumns, ",")
	lines := []string{
		header,
		"1,2024-01-15,10/01/2024,Ana,Sim,Sim,Sim,Sim,Sim,Sim",
		"2,2024-01-10,10/01/2024,Beto,Sim,Sim,Sim,Sim,Sim,Não",
		"3,2024-01-05,,Ana,Sim,,Sim,Sim,Sim,Sim",
		"4,sem data,10/01/2024,Carla,Sim,Sim,Sim,Sim,Sim,Sim",
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func newPipeline(t *testing.T) *report.Service {
	t.Helper()
	return report.NewService(
		chart.NewRenderer(),
		workbook.NewWriter(),
		&reportmocks.MockRunRepository{},
		zap.NewNop(),
	)
}

func TestPipelineEndToEnd(t *testing.T) {
	svc := newPipeline(t)

	rep, err := svc.Generate(context.Background(), "tickets.csv", qualityCSV())
	require.NoError(t, err)

	t.Run("every input row survives", func(t *testing.T) {
		require.Len(t, rep.Records, 4)
		assert.Equal(t, report.StatusLate, rep.Records[0].Status)
		assert.Equal(t, report.StatusOnTime, rep.Records[1].Status)
		assert.Equal(t, report.StatusNoDeadline, rep.Records[2].Status)
		// Unparseable resolution with a valid deadline: difference undefined.
		assert.Equal(t, report.StatusOnTime, rep.Records[3].Status)
	})

	t.Run("summary is consistent", func(t *testing.T) {
		require.Len(t, rep.Summary, 4)
		total := 0
		pct := 0.0
		for _, row := range rep.Summary[:3] {
			total += row.Count
			pct += row.Percentage
		}
		assert.Equal(t, 4, total)
		assert.InDelta(t, 100, pct, 0.5)
	})

	t.Run("charts are real PNGs", func(t *testing.T) {
		require.NotNil(t, rep.Quality)
		assert.Equal(t, pngMagic, rep.SLAChart[:4])
		assert.Equal(t, pngMagic, rep.Quality.ChartPNG[:4])
	})

	t.Run("workbook opens with all sheets", func(t *testing.T) {
		f, err := excelize.OpenReader(bytes.NewReader(rep.Workbook))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t,
			[]string{"Dados Processados", "Porcentagens", "Ranking", "Qualidade"},
			f.GetSheetList())

		processed, err := f.GetRows("Dados Processados")
		require.NoError(t, err)
		assert.Len(t, processed, 5)

		quality, err := f.GetRows("Qualidade")
		require.NoError(t, err)
		// Header, six questions, overall row.
		assert.Len(t, quality, 8)
	})
}

func TestServerEndToEnd(t *testing.T) {
	workspace, err := staging.New(t.TempDir())
	require.NoError(t, err)

	handlers := web.NewHandlers(newPipeline(t), nil, nil, workspace, zap.NewNop(), 2, time.Minute)
	app := fiber.New()
	handlers.Register(app)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "tickets.csv")
	require.NoError(t, err)
	_, err = fw.Write(qualityCSV())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req, 30_000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload web.ReportPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 4, payload.TotalRows)
	assert.Len(t, payload.PreviewRows, 2)
	require.NotNil(t, payload.Quality)
	assert.NotEmpty(t, payload.Quality.Chart)

	download, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports/latest/download", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, download.StatusCode)

	workbookBytes, err := io.ReadAll(download.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(workbookBytes))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Qualidade")
}
