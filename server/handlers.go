package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aluiziolira/go-scrape-reviews/models"
	"github.com/aluiziolira/go-scrape-reviews/parser"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yousuf64/shift"
)

const (
	healthMessage      = "Scraper service is running."
	scrapeFailed       = "Failed to scrape reviews."
	unknownScrapeError = "Unknown error occurred during scraping."
	invalidJSON        = "Invalid JSON request body."
	maxBodyBytes       = 1 << 20
)

// apiError is an error with a response already decided.
type apiError struct {
	status int
	body   models.ErrorResponse
	err    error
}

func (e *apiError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.body.Error
}

func (e *apiError) Unwrap() error {
	return e.err
}

func badRequest(message string, err error) *apiError {
	return &apiError{
		status: http.StatusBadRequest,
		body:   models.ErrorResponse{Error: message},
		err:    err,
	}
}

// handleScrape handles POST /scrape.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	var req models.ScrapeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest(parser.ErrURLRequired.Error(), err)
		}
		return badRequest(invalidJSON, err)
	}

	if err := parser.ValidateScrapeURL(req.URL, s.cfg.URLMarker); err != nil {
		return badRequest(err.Error(), err)
	}

	// a scrape is not cancelled when the client goes away
	ctx := context.WithoutCancel(r.Context())

	result, err := s.scraper.Scrape(ctx, req.URL)
	if err != nil {
		details := err.Error()
		if details == "" {
			details = unknownScrapeError
		}
		return &apiError{
			status: http.StatusInternalServerError,
			body:   models.ErrorResponse{Error: scrapeFailed, Details: details},
			err:    err,
		}
	}

	return writeJSON(w, http.StatusOK, models.ScrapeResponse{Success: true, Data: result})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := io.WriteString(w, healthMessage)
	return err
}

func (s *Server) handleMetrics() shift.HandlerFunc {
	h := promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		h.ServeHTTP(w, r)
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = &apiError{
			status: http.StatusInternalServerError,
			body:   models.ErrorResponse{Error: "Internal server error."},
			err:    err,
		}
	}

	level := slog.LevelWarn
	if apiErr.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.log.Log(r.Context(), level, "request error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", apiErr.status),
		slog.Any("error", err),
	)

	if writeErr := writeJSON(w, apiErr.status, apiErr.body); writeErr != nil {
		s.log.Debug("write error response", slog.Any("error", writeErr))
	}
}
