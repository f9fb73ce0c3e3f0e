// Package server exposes the review scraper over HTTP.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aluiziolira/go-scrape-reviews/config"
	"github.com/aluiziolira/go-scrape-reviews/models"
	"github.com/aluiziolira/go-scrape-reviews/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yousuf64/shift"
)

//go:generate mockgen -destination=../mocks/mock_scraper.go -package=mocks github.com/aluiziolira/go-scrape-reviews/server ReviewScraper

// ReviewScraper produces the reviews of one product page.
type ReviewScraper interface {
	Scrape(ctx context.Context, url string) (*models.ScrapeResult, error)
}

// Server handles the HTTP server and routes.
type Server struct {
	cfg      *config.Config
	scraper  ReviewScraper
	metrics  *Metrics
	gatherer prometheus.Gatherer
	log      *slog.Logger
	srv      *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records HTTP metrics in m. When gatherer is non-nil it is also
// served on GET /metrics.
func WithMetrics(m *Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// NewServer creates a server with all dependencies.
func NewServer(cfg *config.Config, scraper ReviewScraper, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		scraper: scraper,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := shift.New()
	router.Use(tracing.Middleware)
	router.Use(s.requestIDMiddleware)
	if s.metrics != nil {
		router.Use(s.metrics.HTTPMiddleware)
	}
	router.Use(s.loggingMiddleware)
	router.Use(s.errorMiddleware)

	router.POST("/scrape", s.handleScrape)
	router.GET("/health", s.handleHealth)
	if s.gatherer != nil {
		router.GET("/metrics", s.handleMetrics())
	}

	return router.Serve()
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Addr()
	s.srv = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
		ReadTimeout: 15 * time.Second,
		// a scrape may spend both timeouts before it answers
		WriteTimeout: s.cfg.NavigationTimeout + s.cfg.ContentTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("scraper service listening", slog.String("addr", addr))
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down http server")
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
