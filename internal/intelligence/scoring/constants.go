// Package scoring implements the pure scoring strategies of the intelligence
// pipeline: the market price estimator and the quality, demand, risk, and
// pricing strategies, plus the explanation generator.  Every function here is
// deterministic and side-effect free over its inputs; the only injected
// dependency is the calendar month used by the seasonal demand adjustment.
package scoring

import (
	"strings"
	"time"
)

// normalizeCity lower-cases and trims a city name into the key form used by
// the per-city tables, matching listing.Context.NormalizedCity.
func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// The constants below are the one canonical set of weights and thresholds
// shared by the numeric strategies and the explanation generator, so the
// narrative output can never disagree with the numbers it describes.

// Quality strategy contributions (sum of caps = 100).
const (
	qualityPhotoPoints      = 5.0  // per photo
	qualityPhotoCap         = 25.0 // saturates at 5 photos
	qualityDescriptionCap   = 20.0
	qualityLexicalBonusStep = 2.0
	qualityLexicalBonusCap  = 6.0
	qualityAmenityPoints    = 2.0
	qualityAmenityCap       = 16.0
	qualityRatingCap        = 20.0
	qualityCoordinatesBonus = 5.0
	qualityTitleBonus       = 8.0
	qualityTitleMinLen      = 20
)

// Description length bands shared by quality and completeness scoring.
const (
	descriptionFullLen    = 500
	descriptionGoodLen    = 200
	descriptionMinimalLen = 50
)

// Demand strategy contributions.
const (
	demandCityBaseCap      = 40.0 // city coefficient scales into this
	demandBookingPoints    = 4.0  // per confirmed booking
	demandBookingCap       = 20.0
	demandRatingCap        = 15.0
	demandAttributeBonus   = 5.0 // each: photos, description, amenities
	demandPhotoThreshold   = 5
	demandDescThreshold    = descriptionGoodLen
	demandAmenityThreshold = 5
)

// Seasonal demand multipliers.  The month set is fixed; the month itself is
// injected so tests can pin it.
const (
	seasonHighMultiplier = 1.15
	seasonLowMultiplier  = 0.85
)

var seasonHighMonths = map[time.Month]bool{
	time.June:     true,
	time.July:     true,
	time.August:   true,
	time.December: true,
}

var seasonLowMonths = map[time.Month]bool{
	time.January:  true,
	time.February: true,
	time.November: true,
}

// Risk strategy penalties, applied in the documented evaluation order.
const (
	riskBase                   = 10.0
	riskOwnerInactivePenalty   = 30.0
	riskNoDescriptionPenalty   = 15.0
	riskShortDescription       = 8.0
	riskShortDescriptionLen    = 100
	riskNoCoordinatesPenalty   = 10.0
	riskNoPhotosPenalty        = 15.0
	riskFewPhotosPenalty       = 8.0
	riskFewPhotosThreshold     = 3
	riskSuspiciousPricePenalty = 10.0
	riskSuspiciousPriceBelow   = 20.0
	riskNoHistoryPenalty       = 10.0
	riskLowRatingPenalty       = 12.0
	riskLowRatingBelow         = 3.0
)

// Pricing strategy parameters.
const (
	pricingDemandSwing      = 0.25 // demand multiplier range around 1.0
	pricingDemandMidpoint   = 50.0
	pricingPhotoBonus       = 1.05
	pricingPhotoThreshold   = 8
	pricingRatingBonus      = 1.08
	pricingRatingThreshold  = 4.5
	pricingRatingMinReviews = 3
	pricingAmenityBonus     = 1.05
	pricingAmenityThreshold = 10
)

// Market price estimation.
const (
	// minComparableSample is the smallest same-city sample the median is
	// trusted for; below it the per-city fallback constant is used.
	minComparableSample = 5

	// DefaultComparableLimit caps the comparable query when the caller does
	// not configure one.
	DefaultComparableLimit = 60
)

// cityPriceFallback holds the per-city fallback reference prices (currency
// units per night) used when too few comparables exist.
var cityPriceFallback = map[string]float64{
	"amsterdam": 145,
	"berlin":    110,
	"lisbon":    95,
	"paris":     160,
	"prague":    75,
	"default":   100,
}

// cityDemandCoefficient holds the per-city demand baselines in [0, 1].
var cityDemandCoefficient = map[string]float64{
	"amsterdam": 0.85,
	"berlin":    0.75,
	"lisbon":    0.70,
	"paris":     0.90,
	"prague":    0.60,
	"default":   0.50,
}

// Explanation tiers and the summary blend.
const (
	explainHighScore   = 80.0
	explainGoodScore   = 60.0
	explainMediumScore = 40.0

	explainCompletenessNudge  = 70.0
	explainMaxRiskSuggestions = 3

	summaryQualityWeight      = 0.35
	summaryDemandWeight       = 0.25
	summaryRiskWeight         = 0.25
	summaryCompletenessWeight = 0.15
	summaryExcellent          = 75.0
	summarySolid              = 50.0
)
