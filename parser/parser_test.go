package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/aluiziolira/go-scrape-reviews/models"
)

const marker = "g2.com/products/"

func TestValidateScrapeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "product reviews page", url: "https://www.g2.com/products/slack/reviews", wantErr: nil},
		{name: "marker without scheme", url: "g2.com/products/notion", wantErr: nil},
		{name: "empty", url: "", wantErr: ErrURLRequired},
		{name: "other site", url: "https://www.capterra.com/p/135003/Slack/", wantErr: ErrInvalidProductURL},
		{name: "g2 category page", url: "https://www.g2.com/categories/crm", wantErr: ErrInvalidProductURL},
		{name: "whitespace only", url: "   ", wantErr: ErrInvalidProductURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScrapeURL(tt.url, marker)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateScrapeURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	if ErrURLRequired.Error() != "URL is required in the request body." {
		t.Fatalf("unexpected missing-url message %q", ErrURLRequired.Error())
	}
	if ErrInvalidProductURL.Error() != "Please provide a valid G2 product URL." {
		t.Fatalf("unexpected invalid-url message %q", ErrInvalidProductURL.Error())
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "integer", input: "5", expected: 5},
		{name: "decimal", input: "4.5", expected: 4.5},
		{name: "leading whitespace", input: "  3.5", expected: 3.5},
		{name: "trailing text", input: "4.5 out of 5", expected: 4.5},
		{name: "leading dot", input: ".5", expected: 0.5},
		{name: "trailing dot", input: "4.", expected: 4},
		{name: "exponent", input: "1e1", expected: 10},
		{name: "dangling exponent", input: "2e", expected: 2},
		{name: "negative", input: "-1.25", expected: -1.25},
		{name: "hex stops at x", input: "0x10", expected: 0},
		{name: "second dot stops", input: "1.2.3", expected: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRating(tt.input)
			if float64(got) != tt.expected {
				t.Errorf("ParseRating(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseRatingNaN(t *testing.T) {
	for _, input := range []string{"", "stars", ".", "-", "e5", "N/A"} {
		if got := ParseRating(input); !math.IsNaN(float64(got)) {
			t.Errorf("ParseRating(%q) = %v, want NaN", input, got)
		}
	}
}

func TestParseRatingInfinity(t *testing.T) {
	if got := ParseRating("-Infinity"); !math.IsInf(float64(got), -1) {
		t.Fatalf("ParseRating(-Infinity) = %v", got)
	}
	if got := ParseRating("Infinity stars"); !math.IsInf(float64(got), 1) {
		t.Fatalf("ParseRating(Infinity stars) = %v", got)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "surrounding whitespace", input: "\n\t  Great tool  \n", expected: "Great tool"},
		{name: "non-breaking space", input: "\u00a0Acme\u00a0", expected: "Acme"},
		{name: "bom", input: "\uFEFFAcme", expected: "Acme"},
		{name: "inner spacing kept", input: " a  b ", expected: "a  b"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateResult(t *testing.T) {
	full := models.NewResult("Slack")
	full.Append("Great", 5, models.ReviewerInfo{Industry: models.NotAvailable, CompanySize: models.NotAvailable})

	broken := models.NewResult("Slack")
	broken.Append("Great", 5, models.ReviewerInfo{})
	broken.Ratings = broken.Ratings[:0]

	tests := []struct {
		name    string
		result  *models.ScrapeResult
		wantErr bool
	}{
		{name: "nil", result: nil, wantErr: true},
		{name: "placeholder", result: models.NewEmptyResult("Slack"), wantErr: false},
		{name: "one review", result: full, wantErr: false},
		{name: "empty non-placeholder", result: models.NewResult("Slack"), wantErr: true},
		{name: "misaligned ratings", result: broken, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResult(tt.result)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResult() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
