package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyResultEncoding(t *testing.T) {
	data, err := json.Marshal(NewEmptyResult("Slack"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"productName": "Slack",
		"reviews": ["No reviews scraped. Content might be dynamic or selectors are outdated."],
		"ratings": [],
		"totalReviews": 0,
		"reviewerData": []
	}`, string(data))
}

func TestAppendKeepsSlicesAligned(t *testing.T) {
	name := "Jane D."
	result := NewResult("Slack")
	result.Append("first", 5, ReviewerInfo{Name: &name, Industry: NotAvailable, CompanySize: NotAvailable})
	result.Append("second", 3.5, ReviewerInfo{Industry: "Retail", CompanySize: "11-50 emp."})

	assert.Equal(t, 2, result.TotalReviews)
	assert.Equal(t, []string{"first", "second"}, result.Reviews)
	assert.Equal(t, []Rating{5, 3.5}, result.Ratings)
	require.Len(t, result.ReviewerData, 2)
	assert.Equal(t, "Retail", result.ReviewerData[1].Industry)
	assert.False(t, result.IsPlaceholder())
}

func TestRatingEncodesNaNAsNull(t *testing.T) {
	data, err := json.Marshal([]Rating{4.5, Rating(math.NaN()), 5})
	require.NoError(t, err)
	assert.Equal(t, `[4.5,null,5]`, string(data))

	var decoded []Rating
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.True(t, decoded[0].Valid())
	assert.False(t, decoded[1].Valid())
}

func TestReviewerInfoNullFields(t *testing.T) {
	data, err := json.Marshal(ReviewerInfo{Industry: NotAvailable, CompanySize: NotAvailable})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": null,
		"title": null,
		"company": null,
		"industry": "N/A",
		"companySize": "N/A",
		"reviewDate": null
	}`, string(data))
}
