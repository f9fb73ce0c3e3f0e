package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluiziolira/go-scrape-reviews/browser"
	"github.com/aluiziolira/go-scrape-reviews/config"
	"github.com/aluiziolira/go-scrape-reviews/scraper"
	"github.com/aluiziolira/go-scrape-reviews/server"
	"github.com/aluiziolira/go-scrape-reviews/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(1)
	}

	port := flag.String("port", cfg.Port, "HTTP listen port")
	backend := flag.String("backend", cfg.Backend, "Browser backend: playwright or static")
	headless := flag.Bool("headless", cfg.Headless, "Run the browser headless")
	navTimeout := flag.Duration("nav-timeout", cfg.NavigationTimeout, "Page navigation timeout")
	contentTimeout := flag.Duration("content-timeout", cfg.ContentTimeout, "Review content wait timeout")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Separate Prometheus listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	cfg.Port = *port
	cfg.Backend = *backend
	cfg.Headless = *headless
	cfg.NavigationTimeout = *navTimeout
	cfg.ContentTimeout = *contentTimeout
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.ServiceName, cfg.ZipkinEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}()

	launcher, err := createLauncher(cfg)
	if err != nil {
		return fmt.Errorf("create %s launcher: %w", cfg.Backend, err)
	}
	defer func() {
		if err := launcher.Close(); err != nil {
			logger.Error("close launcher", slog.Any("error", err))
		}
	}()

	s, err := scraper.NewScraper(cfg, launcher, scraper.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initialising scraper: %w", err)
	}

	var opts []server.Option
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		httpMetrics := server.NewMetrics(s.Metrics.Registry)
		if cfg.MetricsAddr != "" {
			opts = append(opts, server.WithMetrics(httpMetrics, nil))
			metricsServer = &http.Server{
				Addr:    cfg.MetricsAddr,
				Handler: promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}),
			}
			go func() {
				if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server failed", slog.Any("error", err))
				}
			}()
			logger.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
		} else {
			opts = append(opts, server.WithMetrics(httpMetrics, s.Metrics.Registry))
		}
	}

	srv := server.NewServer(cfg, s, logger, opts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	logger.Info("scraper service started",
		slog.String("addr", cfg.Addr()),
		slog.String("backend", cfg.Backend),
		slog.Bool("headless", cfg.Headless),
	)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received, waiting for in-flight scrapes to finish")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.Any("error", err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", slog.Any("error", err))
		}
	}
	return nil
}

func createLauncher(cfg *config.Config) (browser.Launcher, error) {
	switch cfg.Backend {
	case config.BackendPlaywright:
		return browser.NewPlaywrightLauncher(browser.PlaywrightOptions{
			Headless:        cfg.Headless,
			ExecutablePath:  cfg.ExecutablePath,
			UserAgent:       cfg.UserAgent,
			InstallBrowsers: cfg.InstallBrowsers,
		})
	case config.BackendStatic:
		return browser.NewStaticLauncher(cfg.UserAgent), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(slog.String("service", cfg.ServiceName))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
