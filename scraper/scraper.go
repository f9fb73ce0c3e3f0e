package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aluiziolira/go-scrape-reviews/browser"
	"github.com/aluiziolira/go-scrape-reviews/config"
	"github.com/aluiziolira/go-scrape-reviews/models"
	"github.com/aluiziolira/go-scrape-reviews/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aluiziolira/go-scrape-reviews/scraper"

// Scraper extracts reviews from one product page per call. Every call gets
// its own browser session.
type Scraper struct {
	cfg      *config.Config
	launcher browser.Launcher
	logger   *slog.Logger
	tracer   trace.Tracer
	Metrics  *Metrics
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithMetrics replaces the metrics bundle, e.g. to share a registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Scraper) {
		s.Metrics = m
	}
}

// NewScraper builds a scraper that opens sessions through launcher.
func NewScraper(cfg *config.Config, launcher browser.Launcher, opts ...Option) (*Scraper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if launcher == nil {
		return nil, fmt.Errorf("launcher is nil")
	}

	s := &Scraper{
		cfg:      cfg,
		launcher: launcher,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Metrics == nil {
		s.Metrics = NewMetrics()
	}
	return s, nil
}

// Scrape loads url and returns its reviews. A page without qualifying review
// cards yields the placeholder result, not an error. The browser session is
// closed before Scrape returns, whatever the outcome.
func (s *Scraper) Scrape(ctx context.Context, url string) (result *models.ScrapeResult, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, "scraper.Scrape", trace.WithAttributes(attribute.String("scrape.url", url)))
	defer span.End()

	logger := s.logger.With(slog.String("url", url))
	start := time.Now()
	defer func() {
		s.Metrics.ObserveDuration(time.Since(start))
		if err != nil {
			category := errorTypeLabel(err)
			s.Metrics.IncScrape("error")
			s.Metrics.IncError(category)
			span.RecordError(err)
			span.SetStatus(codes.Error, category)
			logger.Error("scrape failed", slog.String("category", category), slog.Any("error", err))
			return
		}
		outcome := "success"
		if result.IsPlaceholder() {
			outcome = "empty"
		}
		s.Metrics.IncScrape(outcome)
		s.Metrics.AddReviews(result.TotalReviews)
		span.SetAttributes(
			attribute.String("scrape.product", result.ProductName),
			attribute.Int("scrape.reviews", result.TotalReviews),
		)
	}()

	session, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, ErrLaunch{Err: err}
	}
	s.Metrics.SessionOpened()
	defer s.closeSession(logger, session)

	sel := s.cfg.Selectors

	logger.Info("navigating")
	if err := session.Navigate(ctx, url, s.cfg.NavigationTimeout); err != nil {
		return nil, ErrNavigation{Err: err}
	}
	if err := session.WaitForSelector(ctx, sel.ReviewCard, s.cfg.ContentTimeout); err != nil {
		return nil, ErrContentWait{Err: err}
	}

	productName := models.UnknownProduct
	if name := s.optional(logger, "product_name", textOf(session, sel.ProductName)); name != nil {
		productName = *name
	}

	cards, err := session.QueryAll(ctx, sel.ReviewCard)
	if err != nil {
		return nil, fmt.Errorf("query review cards: %w", err)
	}

	result = models.NewResult(productName)
	for i, card := range cards {
		text := s.optional(logger, "review_text", textOf(card, sel.ReviewText))
		rating := s.optional(logger, "rating", attrOf(card, sel.RatingStars, sel.RatingAttr))
		reviewer := models.ReviewerInfo{
			Name:        s.optional(logger, "reviewer_name", textOf(card, sel.ReviewerName)),
			Title:       s.optional(logger, "reviewer_title", textOf(card, sel.ReviewerTitle)),
			Company:     s.optional(logger, "reviewer_company", textOf(card, sel.Company)),
			Industry:    orDefault(s.optional(logger, "reviewer_industry", textOf(card, sel.Industry)), models.NotAvailable),
			CompanySize: orDefault(s.optional(logger, "reviewer_company_size", textOf(card, sel.CompanySize)), models.NotAvailable),
			ReviewDate:  s.optional(logger, "review_date", textOf(card, sel.ReviewDate)),
		}

		if isBlank(text) || isBlank(rating) {
			logger.Debug("skipping review card without text or rating", slog.Int("card", i))
			continue
		}
		result.Append(*text, parser.ParseRating(*rating), reviewer)
	}

	if result.TotalReviews == 0 {
		logger.Warn("no reviews found; the page might be empty or selectors are outdated",
			slog.Int("cards", len(cards)),
		)
		return models.NewEmptyResult(productName), nil
	}

	logger.Info("scraped reviews",
		slog.String("product", productName),
		slog.Int("reviews", result.TotalReviews),
		slog.Int("cards", len(cards)),
	)
	return result, nil
}

func (s *Scraper) closeSession(logger *slog.Logger, session browser.Session) {
	if err := session.Close(); err != nil {
		logger.Warn("close browser session", slog.Any("error", err))
	}
	s.Metrics.SessionClosed()
}

// optional runs get and returns nil when it fails. Failures are expected for
// fields a review does not carry, so they are only logged at debug.
func (s *Scraper) optional(logger *slog.Logger, field string, get func() (string, error)) *string {
	value, err := get()
	if err != nil {
		s.Metrics.IncFieldMiss(field)
		logger.Debug("field unavailable", slog.String("field", field), slog.Any("error", err))
		return nil
	}
	return &value
}

func textOf(scope browser.Scope, selector string) func() (string, error) {
	return func() (string, error) {
		text, err := scope.Text(selector)
		if err != nil {
			return "", err
		}
		return parser.NormalizeText(text), nil
	}
}

func attrOf(scope browser.Scope, selector, name string) func() (string, error) {
	return func() (string, error) {
		return scope.Attr(selector, name)
	}
}

func orDefault(value *string, def string) string {
	if value == nil {
		return def
	}
	return *value
}

func isBlank(value *string) bool {
	return value == nil || *value == ""
}
