package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

func TestAssessRisk_CleanListing(t *testing.T) {
	r := AssessRisk(richListing())
	assert.Equal(t, 10.0, r.Score)
	assert.Equal(t, profile.RiskLow, r.Level)
	assert.Empty(t, r.Factors)
}

func TestAssessRisk_NeglectedListing(t *testing.T) {
	c := &listing.Context{
		ID:          "lst_bad",
		OwnerID:     "own_9",
		City:        "prague",
		BasePrice:   45,
		Title:       "Flat",
		Description: "Nice place.", // 11 chars, short but present
		OwnerStatus: listing.OwnerPending,
	}
	r := AssessRisk(c)
	// 10 base + 30 owner + 8 short desc + 10 coords + 15 photos + 10 history
	assert.Equal(t, 83.0, r.Score)
	assert.Equal(t, profile.RiskHigh, r.Level)
	assert.Equal(t, []string{
		"owner account is not active",
		"description is very short",
		"location coordinates are missing",
		"listing has no photos",
		"no booking or review history",
	}, r.Factors)
}

func TestAssessRisk_DescriptionBands(t *testing.T) {
	c := richListing()
	c.Description = ""
	r := AssessRisk(c)
	assert.Contains(t, r.Factors, "listing has no description")
	assert.NotContains(t, r.Factors, "description is very short")

	c.Description = "short but not empty"
	r = AssessRisk(c)
	assert.Contains(t, r.Factors, "description is very short")
	assert.NotContains(t, r.Factors, "listing has no description")
}

func TestAssessRisk_SuspiciousPrice(t *testing.T) {
	c := richListing()
	c.BasePrice = 19.99
	assert.Contains(t, AssessRisk(c).Factors, "price is suspiciously low")

	c.BasePrice = 20
	assert.NotContains(t, AssessRisk(c).Factors, "price is suspiciously low")

	// A zero price is incomplete data, not a scam signal.
	c.BasePrice = 0
	assert.NotContains(t, AssessRisk(c).Factors, "price is suspiciously low")
}

func TestAssessRisk_LowRatingNeedsReviews(t *testing.T) {
	c := richListing()
	c.AverageRating = 2.5
	assert.Contains(t, AssessRisk(c).Factors, "average rating is below 3.0")

	c.ReviewCount = 0
	c.BookingCount = 3
	assert.NotContains(t, AssessRisk(c).Factors, "average rating is below 3.0")
}

func TestAssessRisk_ScoreClamped(t *testing.T) {
	c := &listing.Context{
		ID:            "lst_worst",
		OwnerID:       "own_9",
		City:          "prague",
		BasePrice:     5,
		OwnerStatus:   listing.OwnerSuspended,
		AverageRating: 0,
	}
	r := AssessRisk(c)
	// 10 + 30 + 15 + 10 + 15 + 10 + 10 = 100, at the ceiling
	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, profile.RiskHigh, r.Level)
	assert.Len(t, r.Factors, 6)
}
