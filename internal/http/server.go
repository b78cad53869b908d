// Package http serves the socialintel dashboard and its JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fyrsmithlabs/socialintel/internal/config"
	"github.com/fyrsmithlabs/socialintel/internal/content"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/fyrsmithlabs/socialintel/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server provides the dashboard, login flow and gated JSON API.
type Server struct {
	echo     *echo.Echo
	logger   *logging.Logger
	sessions *session.Store
	loader   *content.Loader
	metrics  *Metrics
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CookieName      string
	SecureCookies   bool
}

// ConfigFromSettings maps the application configuration onto Config.
func ConfigFromSettings(cfg *config.Config) *Config {
	return &Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CookieName:      cfg.Access.CookieName,
		SecureCookies:   cfg.Server.SecureCookies,
	}
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request and access metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMetricsHandler exposes h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.echo.GET("/metrics", echo.WrapHandler(h))
	}
}

// NewServer creates a new HTTP server.
func NewServer(logger *logging.Logger, sessions *session.Store, loader *content.Loader, cfg *Config, opts ...Option) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if loader == nil {
		return nil, fmt.Errorf("content loader cannot be nil")
	}
	if cfg == nil {
		cfg = &Config{
			Host:            config.DefaultHost,
			Port:            config.DefaultPort,
			ShutdownTimeout: config.DefaultShutdownTimeout,
		}
	}
	if cfg.CookieName == "" {
		cfg.CookieName = config.DefaultCookieName
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	s := &Server{
		echo:     e,
		logger:   logger,
		sessions: sessions,
		loader:   loader,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	e.HTTPErrorHandler = s.handleError

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())
	if s.metrics != nil {
		e.Use(s.metrics.Middleware())
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/login", s.handleLogin)
	s.echo.POST("/logout", s.handleLogout)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/session", s.handleCreateSession)
	v1.DELETE("/session", s.handleDeleteSession)

	gated := v1.Group("", s.RequireAccess())
	gated.GET("/trends", s.handleTrends)
	gated.GET("/attraction", s.handleAttraction)
	gated.GET("/skills", s.handleSkills)
}

// requestLogger attaches the request id and logger to the request context
// and logs every request once it completes.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			ctx := logging.WithRequestID(req.Context(), c.Response().Header().Get(echo.HeaderXRequestID))
			ctx = logging.WithLogger(ctx, s.logger)
			c.SetRequest(req.WithContext(ctx))

			if err := next(c); err != nil {
				c.Error(err)
			}

			s.logger.Info(c.Request().Context(), "http request",
				zap.String("method", req.Method),
				zap.String("uri", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)
			return nil
		}
	}
}

// handleError writes JSON errors for the API and an HTML page elsewhere.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", zap.Int("status", code), zap.Error(err))
	}

	path := c.Request().URL.Path
	switch {
	case c.Request().Method == http.MethodHead:
		err = c.NoContent(code)
	case strings.HasPrefix(path, "/api/") || path == "/health":
		err = c.JSON(code, ErrorResponse{Error: msg})
	default:
		err = c.Render(code, pageError, errorPage{Status: code, Message: msg})
	}
	if err != nil {
		s.logger.Warn(c.Request().Context(), "writing error response", zap.Error(err))
	}
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then shuts down within the
// configured timeout. It returns http.ErrServerClosed after a clean
// shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr()
	s.logger.Info(ctx, "starting http server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return <-errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
