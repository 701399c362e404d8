package scoring

import (
	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

// RiskResult is the outcome of a risk assessment: the numeric score, the
// derived level, and the human-readable factors, one per penalty applied, in
// evaluation order.
type RiskResult struct {
	Score   float64
	Level   profile.RiskLevel
	Factors []string
}

// AssessRisk scores operational risk in [0, 100], starting from a base of 10
// and adding a penalty per red flag.  Factors are appended in the same fixed
// order the penalties are evaluated, so the output is reproducible.
func AssessRisk(c *listing.Context) RiskResult {
	score := riskBase
	var factors []string

	add := func(points float64, factor string) {
		score += points
		factors = append(factors, factor)
	}

	if c.OwnerStatus != listing.OwnerActive {
		add(riskOwnerInactivePenalty, "owner account is not active")
	}
	switch {
	case len(c.Description) == 0:
		add(riskNoDescriptionPenalty, "listing has no description")
	case len(c.Description) < riskShortDescriptionLen:
		add(riskShortDescription, "description is very short")
	}
	if !c.HasCoordinates {
		add(riskNoCoordinatesPenalty, "location coordinates are missing")
	}
	switch {
	case c.PhotoCount == 0:
		add(riskNoPhotosPenalty, "listing has no photos")
	case c.PhotoCount < riskFewPhotosThreshold:
		add(riskFewPhotosPenalty, "listing has fewer than 3 photos")
	}
	if c.BasePrice > 0 && c.BasePrice < riskSuspiciousPriceBelow {
		add(riskSuspiciousPricePenalty, "price is suspiciously low")
	}
	if c.ReviewCount == 0 && c.BookingCount == 0 {
		add(riskNoHistoryPenalty, "no booking or review history")
	}
	if c.ReviewCount > 0 && c.AverageRating < riskLowRatingBelow {
		add(riskLowRatingPenalty, "average rating is below 3.0")
	}

	score = profile.ClampScore(score)
	return RiskResult{
		Score:   score,
		Level:   profile.RiskLevelForScore(score),
		Factors: factors,
	}
}
