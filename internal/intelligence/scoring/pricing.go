package scoring

import (
	"math"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

// PricingResult carries the recommendation derived from the city reference
// price: the recommended nightly price, its delta against the current price,
// and the resulting market position.
type PricingResult struct {
	ReferencePrice   float64
	RecommendedPrice int
	DeltaPercent     int
	Position         profile.MarketPosition
}

// RecommendPrice derives a price recommendation from the city reference price
// and the listing's demand score plus premium signals.
//
// The demand multiplier swings the reference ±25% around a demand score of
// 50; strong photo coverage, a high rating with enough reviews, and a rich
// amenity set each add a small premium.  The delta percent is measured
// against the current price; a listing without a positive current price gets
// a zero delta and is reported at market.
func RecommendPrice(c *listing.Context, referencePrice, demandScore float64) PricingResult {
	mult := 1 + (demandScore-pricingDemandMidpoint)/pricingDemandMidpoint*pricingDemandSwing
	if c.PhotoCount >= pricingPhotoThreshold {
		mult *= pricingPhotoBonus
	}
	if c.AverageRating >= pricingRatingThreshold && c.ReviewCount >= pricingRatingMinReviews {
		mult *= pricingRatingBonus
	}
	if c.AmenityCount >= pricingAmenityThreshold {
		mult *= pricingAmenityBonus
	}

	recommended := int(math.Round(referencePrice * mult))
	if recommended < 1 {
		recommended = 1
	}

	delta := 0
	if c.BasePrice > 0 {
		delta = int(math.Round((float64(recommended) - c.BasePrice) / c.BasePrice * 100))
	}

	return PricingResult{
		ReferencePrice:   referencePrice,
		RecommendedPrice: recommended,
		DeltaPercent:     delta,
		Position:         profile.MarketPositionForDelta(delta),
	}
}
