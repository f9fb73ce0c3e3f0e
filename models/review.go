// Package models defines the request and result types of the review scraper.
package models

import (
	"encoding/json"
	"math"
	"strconv"
)

const (
	// UnknownProduct replaces a product name that could not be read.
	UnknownProduct = "Unknown Product"
	// NotAvailable is the default for reviewer industry and company size.
	NotAvailable = "N/A"
	// NoReviewsPlaceholder is the single review of a result with no qualifying cards.
	NoReviewsPlaceholder = "No reviews scraped. Content might be dynamic or selectors are outdated."
)

// ScrapeRequest is the body of POST /scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// Rating is a numeric review rating. A rating that did not parse is NaN and
// encodes as JSON null.
type Rating float64

// Valid reports whether the rating holds a finite number.
func (r Rating) Valid() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'g', -1, 64), nil
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}

// ReviewerInfo describes the author of one review.
type ReviewerInfo struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Industry    string  `json:"industry"`
	CompanySize string  `json:"companySize"`
	ReviewDate  *string `json:"reviewDate"`
}

// ScrapeResult holds the reviews of one product page. Reviews, Ratings and
// ReviewerData are parallel: index i of each comes from the same review card.
type ScrapeResult struct {
	ProductName  string         `json:"productName"`
	Reviews      []string       `json:"reviews"`
	Ratings      []Rating       `json:"ratings"`
	TotalReviews int            `json:"totalReviews"`
	ReviewerData []ReviewerInfo `json:"reviewerData"`
}

// NewResult returns an empty result ready for Append.
func NewResult(productName string) *ScrapeResult {
	return &ScrapeResult{
		ProductName:  productName,
		Reviews:      []string{},
		Ratings:      []Rating{},
		ReviewerData: []ReviewerInfo{},
	}
}

// NewEmptyResult returns the placeholder result for a page without qualifying
// review cards. It is a successful result, not an error.
func NewEmptyResult(productName string) *ScrapeResult {
	result := NewResult(productName)
	result.Reviews = []string{NoReviewsPlaceholder}
	return result
}

// Append adds one qualifying review card to all parallel slices.
func (r *ScrapeResult) Append(text string, rating Rating, reviewer ReviewerInfo) {
	r.Reviews = append(r.Reviews, text)
	r.Ratings = append(r.Ratings, rating)
	r.ReviewerData = append(r.ReviewerData, reviewer)
	r.TotalReviews = len(r.Reviews)
}

// IsPlaceholder reports whether r is the no-reviews placeholder.
func (r *ScrapeResult) IsPlaceholder() bool {
	return r.TotalReviews == 0 &&
		len(r.Ratings) == 0 &&
		len(r.ReviewerData) == 0 &&
		len(r.Reviews) == 1 &&
		r.Reviews[0] == NoReviewsPlaceholder
}

// ScrapeResponse is the 200 body of POST /scrape.
type ScrapeResponse struct {
	Success bool          `json:"success"`
	Data    *ScrapeResult `json:"data"`
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
