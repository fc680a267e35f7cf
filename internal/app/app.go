package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/suportelab/ticket-sla-report/internal/config"
	"github.com/suportelab/ticket-sla-report/internal/metrics"
	"github.com/suportelab/ticket-sla-report/internal/report"
	"github.com/suportelab/ticket-sla-report/internal/repository"
	"github.com/suportelab/ticket-sla-report/internal/staging"
	"github.com/suportelab/ticket-sla-report/internal/web"
	"github.com/suportelab/ticket-sla-report/pkg/cache"
	"github.com/suportelab/ticket-sla-report/pkg/chart"
	dbbuilder "github.com/suportelab/ticket-sla-report/pkg/database"
	"github.com/suportelab/ticket-sla-report/pkg/webserver"
	"github.com/suportelab/ticket-sla-report/pkg/workbook"
)

type App struct {
	logger    *zap.Logger
	dbPool    *sql.DB
	cache     *cache.Cache
	workspace *staging.Workspace
	server    *webserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	runRepo := repository.NewReportRunRepository(dbPool)
	if err := runRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	var cacheClient *cache.Cache
	if cfg.CacheEnabled {
		cacheClient, err = cache.New(ctx,
			cache.WithAddress(cfg.RedisAddr),
		)
		if err != nil {
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	}

	workspace, err := staging.New(cfg.StagingDir)
	if err != nil {
		return nil, fmt.Errorf("staging init failed: %w", err)
	}

	reportService := report.NewService(chart.NewRenderer(), workbook.NewWriter(), runRepo, logger)

	metrics.Register()

	handlers := web.NewHandlers(reportService, runRepo, cacherOrNil(cacheClient), workspace, logger, cfg.PreviewRows, cfg.CacheTTL)

	server, err := webserver.New(
		webserver.WithPort(cfg.HTTPPort),
		webserver.WithLogger(logger),
		webserver.WithLogging(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}
	handlers.Register(server.App())

	return &App{
		logger:    logger,
		dbPool:    dbPool,
		cache:     cacheClient,
		workspace: workspace,
		server:    server,
	}, nil
}

// cacherOrNil avoids handing the handlers a non-nil interface wrapping a nil
// *cache.Cache when caching is disabled.
func cacherOrNil(c *cache.Cache) web.Cacher {
	if c == nil {
		return nil
	}
	return c
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	if err := a.server.Stop(10 * time.Second); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}
	if err := a.workspace.Release(); err != nil {
		a.logger.Error("staging cleanup error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed successfully")

	_ = a.logger.Sync()
	return nil
}
