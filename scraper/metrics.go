package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry         *prometheus.Registry
	ScrapesTotal     *prometheus.CounterVec
	ScrapeDuration   prometheus.Histogram
	ReviewsTotal     prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec
	FieldMissesTotal *prometheus.CounterVec
	SessionsOpen     prometheus.Gauge
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	scrapes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_scrapes_total",
			Help: "Total scrape runs by outcome.",
		},
		[]string{"outcome"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_scrape_duration_seconds",
			Help:    "Wall time of a scrape, from browser launch to close.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120},
		},
	)
	reviews := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_reviews_scraped_total",
			Help: "Total number of qualifying review cards extracted.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of fatal scrape errors by type.",
		},
		[]string{"error_type"},
	)
	fieldMisses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_field_misses_total",
			Help: "Fields that could not be extracted and fell back to a default.",
		},
		[]string{"field"},
	)
	sessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scraper_browser_sessions_open",
			Help: "Browser sessions currently open.",
		},
	)

	registry.MustRegister(scrapes, duration, reviews, errorsTotal, fieldMisses, sessions)

	return &Metrics{
		Registry:         registry,
		ScrapesTotal:     scrapes,
		ScrapeDuration:   duration,
		ReviewsTotal:     reviews,
		ErrorsTotal:      errorsTotal,
		FieldMissesTotal: fieldMisses,
		SessionsOpen:     sessions,
	}
}

// IncScrape increments the scrapes counter for an outcome label.
func (m *Metrics) IncScrape(outcome string) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records a scrape duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapeDuration.Observe(d.Seconds())
}

// AddReviews adds n to the reviews counter.
func (m *Metrics) AddReviews(n int) {
	if m == nil {
		return
	}
	m.ReviewsTotal.Add(float64(n))
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// IncFieldMiss increments the field misses counter.
func (m *Metrics) IncFieldMiss(field string) {
	if m == nil {
		return
	}
	m.FieldMissesTotal.WithLabelValues(field).Inc()
}

// SessionOpened records a launched browser session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsOpen.Inc()
}

// SessionClosed records a closed browser session.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.SessionsOpen.Dec()
}
