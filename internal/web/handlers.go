package web

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/suportelab/ticket-sla-report/internal/ingest"
	"github.com/suportelab/ticket-sla-report/internal/metrics"
	"github.com/suportelab/ticket-sla-report/internal/staging"
)

const (
	cacheKeyLatestReport = "web:latest_report"

	defaultCacheTTL  = 10 * time.Minute
	historyPageSize  = 20
	workbookMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxUploadBytes   = 32 << 20
)

// Handlers serves the upload/report/download surface. The most recent
// artifact is retained in-process behind a single RWMutex so the latest
// report and download views survive without any external store; concurrent
// submissions serialize on that lock when publishing.
type Handlers struct {
	service     ReportService
	history     RunHistory
	cache       Cacher
	workspace   *staging.Workspace
	logger      *zap.Logger
	previewRows int
	cacheTTL    time.Duration

	mu       sync.RWMutex
	latest   *ReportPayload
	workbook []byte
}

// NewHandlers initializes the HTTP handlers. cache and history may be nil;
// the corresponding features degrade gracefully.
func NewHandlers(service ReportService, history RunHistory, cache Cacher, workspace *staging.Workspace, logger *zap.Logger, previewRows int, ttl time.Duration) *Handlers {
	if service == nil {
		panic("nil ReportService provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Handlers{
		service:     service,
		history:     history,
		cache:       cache,
		workspace:   workspace,
		logger:      logger.Named("web-handler"),
		previewRows: previewRows,
		cacheTTL:    ttl,
	}
}

// Register mounts all routes on the fiber app.
func (h *Handlers) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/metrics", metrics.Handler())
	app.Post("/reports", h.SubmitReport)
	app.Get("/reports/latest", h.LatestReport)
	app.Get("/reports/latest/download", h.DownloadWorkbook)
	app.Get("/reports/history", h.History)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SubmitReport accepts a multipart ticket export, runs the pipeline and
// publishes the artifact as the new latest result. All-or-nothing: a failed
// submission leaves the previous latest result untouched.
func (h *Handlers) SubmitReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nenhum arquivo enviado",
		})
	}
	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nenhum arquivo selecionado",
		})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "arquivo excede o tamanho máximo",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "falha ao ler o arquivo enviado",
		})
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		h.logger.Error("failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "falha ao ler o arquivo enviado",
		})
	}

	if h.workspace != nil {
		if _, err := h.workspace.Stage(fileHeader.Filename, data); err != nil {
			h.logger.Warn("failed to stage upload", zap.Error(err))
		}
	}

	started := time.Now()
	rep, err := h.service.Generate(c.Context(), fileHeader.Filename, data)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return h.submissionError(c, err)
	}
	metrics.SubmissionsTotal.WithLabelValues("ok").Inc()
	metrics.ProcessingDuration.Observe(time.Since(started).Seconds())
	metrics.RowsProcessed.Add(float64(len(rep.Records)))

	payload := newReportPayload(rep, h.previewRows)

	// Drop the superseded cache entry before publishing so a concurrent
	// latest-report read cannot serve the old payload past this point.
	if h.cache != nil {
		if err := h.cache.Delete(c.Context(), cacheKeyLatestReport); err != nil {
			h.logger.Warn("failed to invalidate cached report", zap.Error(err))
		}
	}

	h.mu.Lock()
	h.latest = payload
	h.workbook = rep.Workbook
	h.mu.Unlock()

	if h.workspace != nil {
		if _, err := h.workspace.StoreOutput(rep.Workbook); err != nil {
			h.logger.Warn("failed to store workbook in staging", zap.Error(err))
		}
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Context(), cacheKeyLatestReport, payload, h.cacheTTL); err != nil {
			h.logger.Warn("failed to cache latest report", zap.Error(err))
		}
	}

	return c.JSON(payload)
}

func (h *Handlers) LatestReport(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached ReportPayload
		if err := h.cache.Get(c.Context(), cacheKeyLatestReport, &cached); err == nil {
			return c.JSON(&cached)
		}
	}

	h.mu.RLock()
	payload := h.latest
	h.mu.RUnlock()

	if payload == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "nenhum relatório gerado",
		})
	}
	return c.JSON(payload)
}

func (h *Handlers) DownloadWorkbook(c *fiber.Ctx) error {
	h.mu.RLock()
	workbook := h.workbook
	h.mu.RUnlock()

	if len(workbook) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "nenhum relatório gerado",
		})
	}

	c.Set(fiber.HeaderContentType, workbookMimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+staging.OutputFilename+`"`)
	return c.Send(workbook)
}

func (h *Handlers) History(c *fiber.Ctx) error {
	if h.history == nil {
		return c.JSON([]any{})
	}

	runs, err := h.history.LatestRuns(c.Context(), historyPageSize)
	if err != nil {
		h.logger.Error("failed to load run history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "falha ao consultar o histórico",
		})
	}
	return c.JSON(runs)
}

// submissionError maps pipeline failures onto status codes. Schema and
// decode problems are the caller's data; everything else is ours.
func (h *Handlers) submissionError(c *fiber.Ctx, err error) error {
	var schemaErr *ingest.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		h.logger.Info("submission rejected: schema", zap.Strings("missing", schemaErr.Missing))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": schemaErr.Error(),
		})
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		h.logger.Info("submission rejected: format", zap.Error(err))
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": "formato de arquivo não suportado",
		})
	case errors.Is(err, ingest.ErrDecode), errors.Is(err, ingest.ErrEmptyTable):
		h.logger.Info("submission rejected: decode", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "não foi possível ler o arquivo enviado",
		})
	default:
		h.logger.Error("report generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "falha ao processar o relatório",
		})
	}
}
