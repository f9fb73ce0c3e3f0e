package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aluiziolira/go-scrape-reviews/models"
)

var (
	// ErrURLRequired is returned when the request carries no URL.
	ErrURLRequired = errors.New("URL is required in the request body.")
	// ErrInvalidProductURL is returned when the URL is not a product page.
	ErrInvalidProductURL = errors.New("Please provide a valid G2 product URL.")
)

// ValidateScrapeURL checks raw loosely: it must be present and contain marker.
func ValidateScrapeURL(raw, marker string) error {
	if raw == "" {
		return ErrURLRequired
	}
	if !strings.Contains(raw, marker) {
		return ErrInvalidProductURL
	}
	return nil
}

// NormalizeText trims surrounding whitespace, including the BOM.
func NormalizeText(text string) string {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// ParseRating reads the longest numeric prefix of s, after leading
// whitespace, the way a browser's parseFloat does. It returns NaN when no
// prefix is numeric.
func ParseRating(s string) models.Rating {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	sign := ""
	rest := s
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		sign = rest[:1]
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return models.Rating(math.Inf(-1))
		}
		return models.Rating(math.Inf(1))
	}

	prefix := numericPrefix(rest)
	if prefix == "" {
		return models.Rating(math.NaN())
	}
	f, err := strconv.ParseFloat(sign+prefix, 64)
	if err != nil {
		// out of range values still carry a sign and magnitude
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return models.Rating(f)
		}
		return models.Rating(math.NaN())
	}
	return models.Rating(f)
}

// numericPrefix returns the longest prefix of s matching
// digits [ "." digits ] [ ("e"|"E") [sign] digits ], where at least one
// mantissa digit is present.
func numericPrefix(s string) string {
	i := 0
	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			fracDigits++
		}
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ValidateResult checks that the parallel slices of r line up.
func ValidateResult(r *models.ScrapeResult) error {
	if r == nil {
		return fmt.Errorf("result is nil")
	}
	if r.IsPlaceholder() {
		return nil
	}
	if r.TotalReviews == 0 {
		return fmt.Errorf("result has no reviews and is not the placeholder")
	}
	if len(r.Reviews) != r.TotalReviews {
		return fmt.Errorf("reviews=%d, totalReviews=%d", len(r.Reviews), r.TotalReviews)
	}
	if len(r.Ratings) != r.TotalReviews {
		return fmt.Errorf("ratings=%d, totalReviews=%d", len(r.Ratings), r.TotalReviews)
	}
	if len(r.ReviewerData) != r.TotalReviews {
		return fmt.Errorf("reviewerData=%d, totalReviews=%d", len(r.ReviewerData), r.TotalReviews)
	}
	return nil
}
