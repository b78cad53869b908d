// Socialintel serves the Social Intelligence Platform dashboard.
//
// The dashboard and its JSON API sit behind a single shared access code.
// Configuration comes from ~/.config/socialintel/config.yaml (optional)
// overridden by SOCIALINTEL_* environment variables. See internal/config.
//
// Usage:
//
//	# Start server with defaults
//	SOCIALINTEL_ACCESS_CODE=... socialintel
//
//	# Use a specific config file
//	socialintel -config /etc/socialintel/config.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/socialintel/internal/config"
	"github.com/fyrsmithlabs/socialintel/internal/content"
	httpserver "github.com/fyrsmithlabs/socialintel/internal/http"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/fyrsmithlabs/socialintel/internal/session"
	"github.com/fyrsmithlabs/socialintel/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/socialintel/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  socialintel           Start the dashboard server\n")
			fmt.Fprintf(os.Stderr, "  socialintel version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWithFile(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(ctx, cfg); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("socialintel by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run wires telemetry, logging, sessions, content and the HTTP server,
// then blocks until ctx is cancelled.
//
// Returns http.ErrServerClosed on graceful shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	tel, err := telemetry.New(ctx, telemetry.FromSettings(cfg.Telemetry, version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		_ = tel.Shutdown(context.Background())
	}()

	logger, err := initLogger(cfg, tel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(ctx, "Starting socialintel",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("content_dir", cfg.Content.Dir),
		zap.Bool("telemetry", tel.IsEnabled()),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	if health := tel.Health(); health.Degraded {
		logger.Warn(ctx, "telemetry degraded, continuing without export", zap.Error(health.Err))
	}

	if !cfg.Access.Code.IsSet() {
		logger.Warn(ctx, "no access code configured; every login attempt will be denied",
			zap.String("env", config.EnvPrefix+"ACCESS_CODE"))
	}

	loader := content.NewLoader(cfg.Content.Dir, content.WithTracerProvider(tel.TracerProvider()))
	if err := loader.Validate(ctx); err != nil {
		logger.Warn(ctx, "content validation failed; affected tabs will error until fixed", zap.Error(err))
	}

	if cfg.Content.Watch {
		stopWatch, err := watchContent(ctx, loader, logger)
		if err != nil {
			logger.Warn(ctx, "content watcher unavailable", zap.Error(err))
		} else {
			defer stopWatch()
		}
	}

	sessions := session.NewStore(cfg.Access.Code, session.WithMaxSessions(cfg.Access.MaxSessions))

	metrics := httpserver.NewMetrics(logger,
		httpserver.WithMeter(tel.Meter("github.com/fyrsmithlabs/socialintel/internal/http")),
		httpserver.WithRegisterer(tel.Registry()),
	)

	srv, err := httpserver.NewServer(logger, sessions, loader, httpserver.ConfigFromSettings(cfg),
		httpserver.WithMetrics(metrics),
		httpserver.WithMetricsHandler(promhttp.HandlerFor(tel.Registry(), promhttp.HandlerOpts{})),
	)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	logger.Info(ctx, "Server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("metrics_endpoint", "/metrics"))

	return srv.Start(ctx)
}

// initLogger builds the structured logger, bridging to OTel when export
// is on.
func initLogger(cfg *config.Config, tel *telemetry.Telemetry) (*logging.Logger, error) {
	lcfg, err := logging.FromSettings(cfg.Logging)
	if err != nil {
		return nil, err
	}
	provider := tel.LoggerProvider()
	lcfg.Output.OTEL = provider != nil
	return logging.NewLogger(lcfg, provider)
}

// watchContent re-validates the fixtures whenever one changes. The
// returned func stops the watcher.
func watchContent(ctx context.Context, loader *content.Loader, logger *logging.Logger) (func(), error) {
	w, err := content.NewWatcher(loader.Dir(), content.WithErrorHandler(func(err error) {
		logger.Warn(ctx, "content watcher error", zap.Error(err))
	}))
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		for change := range w.Events() {
			if _, err := loader.Load(ctx, change.Dataset); err != nil {
				logger.Error(ctx, "content changed but failed to load",
					zap.String("dataset", string(change.Dataset)),
					zap.String("path", change.Path),
					zap.Error(err))
				continue
			}
			logger.Info(ctx, "content reloaded",
				zap.String("dataset", string(change.Dataset)),
				zap.String("op", change.Op))
		}
	}()

	return w.Stop, nil
}
