package scoring

import (
	"context"
	"sort"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// MarketEstimator produces the city reference price a listing is scored
// against.  It never fails: when the comparable sample is too small or the
// query errors, it degrades to the per-city fallback table.
type MarketEstimator struct {
	reader listing.Reader
	limit  int
}

// NewMarketEstimator builds an estimator over the given listing reader.
// A non-positive limit falls back to DefaultComparableLimit.
func NewMarketEstimator(reader listing.Reader, limit int) *MarketEstimator {
	if limit <= 0 {
		limit = DefaultComparableLimit
	}
	return &MarketEstimator{reader: reader, limit: limit}
}

// ReferencePrice estimates the nightly reference price for the given city.
// With at least minComparableSample comparable prices it returns their
// median; otherwise it returns FallbackPrice for the city.
func (e *MarketEstimator) ReferencePrice(ctx context.Context, city string, excludeID common.ID) float64 {
	prices, err := e.reader.GetComparablePrices(ctx, city, excludeID, e.limit)
	if err != nil || len(prices) < minComparableSample {
		return FallbackPrice(city)
	}
	return median(prices)
}

// FallbackPrice returns the static per-city reference price used when no
// trustworthy comparable sample exists.  Unknown cities get the default.
func FallbackPrice(city string) float64 {
	if p, ok := cityPriceFallback[normalizeCity(city)]; ok {
		return p
	}
	return cityPriceFallback["default"]
}

// DemandCoefficient returns the per-city demand baseline in [0, 1].
func DemandCoefficient(city string) float64 {
	if c, ok := cityDemandCoefficient[normalizeCity(city)]; ok {
		return c
	}
	return cityDemandCoefficient["default"]
}

// median returns the median of prices without mutating the input slice.
// For an even count it averages the central pair.
func median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
