package webserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Option func(*Options)

type Options struct {
	port          int
	logger        *zap.Logger
	bodyLimit     int
	readTimeout   time.Duration
	enableLogging bool
}

func WithPort(port int) Option {
	return func(o *Options) {
		o.port = port
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithBodyLimit(bytes int) Option {
	return func(o *Options) {
		o.bodyLimit = bytes
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.readTimeout = d
	}
}

func WithLogging(enabled bool) Option {
	return func(o *Options) {
		o.enableLogging = enabled
	}
}

type Server struct {
	app    *fiber.App
	port   int
	logger *zap.Logger
}

// New creates a new HTTP server using the builder options.
func New(opts ...Option) (*Server, error) {
	options := &Options{
		port:        8080,
		logger:      zap.NewNop(),
		bodyLimit:   32 << 20,
		readTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.port < 1 || options.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", options.port)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             options.bodyLimit,
		ReadTimeout:           options.readTimeout,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	if options.enableLogging {
		app.Use(requestLogger(logger))
	}

	return &Server{
		app:    app,
		port:   options.port,
		logger: logger,
	}, nil
}

// App exposes the underlying fiber app for route registration.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := s.app.Listen(addr); err != nil {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(started)))
		return err
	}
}
