package scoring

import (
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

// DemandScorer rates expected booking demand in [0, 100].  The calendar month
// feeding the seasonal adjustment is injected so the score stays reproducible
// under test.
type DemandScorer struct {
	nowMonth func() time.Month
}

// NewDemandScorer builds a scorer using the wall clock (UTC) for the season.
func NewDemandScorer() *DemandScorer {
	return &DemandScorer{nowMonth: func() time.Month { return time.Now().UTC().Month() }}
}

// NewDemandScorerAt builds a scorer pinned to a fixed month.
func NewDemandScorerAt(month time.Month) *DemandScorer {
	return &DemandScorer{nowMonth: func() time.Month { return month }}
}

// Score computes the demand score for one listing snapshot.
//
// City baseline contributes up to 40, confirmed bookings up to 20, review
// rating up to 15, and three attribute bonuses of 5 each; the sum is scaled
// by the seasonal multiplier and clamped.
func (s *DemandScorer) Score(c *listing.Context) float64 {
	score := DemandCoefficient(c.NormalizedCity()) * demandCityBaseCap

	bookings := float64(c.BookingCount) * demandBookingPoints
	if bookings > demandBookingCap {
		bookings = demandBookingCap
	}
	score += bookings

	if c.ReviewCount > 0 {
		score += c.AverageRating / 5 * demandRatingCap
	}
	if c.PhotoCount >= demandPhotoThreshold {
		score += demandAttributeBonus
	}
	if len(c.Description) >= demandDescThreshold {
		score += demandAttributeBonus
	}
	if c.AmenityCount >= demandAmenityThreshold {
		score += demandAttributeBonus
	}

	return profile.ClampScore(score * seasonMultiplier(s.nowMonth()))
}

func seasonMultiplier(m time.Month) float64 {
	switch {
	case seasonHighMonths[m]:
		return seasonHighMultiplier
	case seasonLowMonths[m]:
		return seasonLowMultiplier
	default:
		return 1.0
	}
}
