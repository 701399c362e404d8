package insight

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
	"github.com/stayscope/listing-intelligence/pkg/types/insight"
)

// Portfolio health blend weights and tier cutoffs.
const (
	healthQualityWeight     = 0.3
	healthDemandWeight      = 0.3
	healthSafetyWeight      = 0.2
	healthProbabilityWeight = 0.2

	healthExcellentCutoff = 75.0
	healthGoodCutoff      = 55.0
)

// Health tier labels.
const (
	HealthExcellent      = "excellent"
	HealthGood           = "good"
	HealthNeedsAttention = "needs_attention"
)

// Demand tier cutoffs for the market overview (listings with stored
// profiles per city).
const (
	demandTierHighCount   = 20
	demandTierMediumCount = 10
)

// Revenue forecast horizon in nights.
const forecastNights = 30

// Aggregator builds owner and market roll-ups from stored profiles.  It only
// reads the store; listings without a computed profile are invisible to it.
type Aggregator struct {
	store profile.Repository
	now   func() time.Time
}

// NewAggregator wires an aggregator over the profile store.
func NewAggregator(store profile.Repository) *Aggregator {
	return &Aggregator{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// GetOwnerSummary aggregates every stored profile of the owner's listings:
// mean scores, a 30-night revenue forecast, and a categorical health tier.
// An owner with no stored profiles gets an empty summary, not an error.
func (a *Aggregator) GetOwnerSummary(ctx context.Context, ownerID common.OwnerID) (*insight.OwnerSummaryDTO, error) {
	profiles, err := a.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAggregationFailed, "list profiles by owner")
	}

	out := &insight.OwnerSummaryDTO{
		OwnerID:      string(ownerID),
		ListingCount: len(profiles),
		Health:       HealthNeedsAttention,
		GeneratedAt:  a.now(),
	}
	if len(profiles) == 0 {
		return out, nil
	}

	var quality, demand, risk, prob, revenue float64
	for _, p := range profiles {
		quality += p.QualityScore
		demand += p.DemandScore
		risk += p.RiskScore
		prob += p.BookingProbability
		revenue += float64(p.RecommendedPrice) * p.BookingProbability * forecastNights
	}
	n := float64(len(profiles))
	out.AvgQualityScore = quality / n
	out.AvgDemandScore = demand / n
	out.AvgRiskScore = risk / n
	out.AvgBookingProbability = prob / n
	out.MonthlyRevenueForecast = revenue
	out.Health = healthTier(out.AvgQualityScore, out.AvgDemandScore, out.AvgRiskScore, out.AvgBookingProbability)
	return out, nil
}

// GetMarketOverview rolls stored profiles up per city.  An empty city returns
// every city, sorted by name; a named city returns at most that one entry.
// The city parameter is normalized the same way profiles store it, so
// "Berlin" matches profiles stored under "berlin".
func (a *Aggregator) GetMarketOverview(ctx context.Context, city string) (*insight.MarketOverviewDTO, error) {
	profiles, err := a.store.ListByCity(ctx, strings.ToLower(strings.TrimSpace(city)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAggregationFailed, "list profiles by city")
	}

	byCity := make(map[string][]*profile.IntelligenceProfile)
	for _, p := range profiles {
		byCity[p.City] = append(byCity[p.City], p)
	}

	out := &insight.MarketOverviewDTO{GeneratedAt: a.now()}
	for name, group := range byCity {
		var quality float64
		prices := make([]float64, 0, len(group))
		for _, p := range group {
			quality += p.QualityScore
			prices = append(prices, float64(p.RecommendedPrice))
		}
		out.Cities = append(out.Cities, insight.CityMarketDTO{
			City:                   name,
			ListingCount:           len(group),
			AvgQualityScore:        quality / float64(len(group)),
			MedianRecommendedPrice: medianOf(prices),
			DemandTier:             demandTier(len(group)),
		})
	}
	sort.Slice(out.Cities, func(i, j int) bool { return out.Cities[i].City < out.Cities[j].City })
	return out, nil
}

func healthTier(quality, demand, risk, probability float64) string {
	h := healthQualityWeight*quality +
		healthDemandWeight*demand +
		healthSafetyWeight*(100-risk) +
		healthProbabilityWeight*probability*100
	switch {
	case h >= healthExcellentCutoff:
		return HealthExcellent
	case h >= healthGoodCutoff:
		return HealthGood
	default:
		return HealthNeedsAttention
	}
}

func demandTier(count int) string {
	switch {
	case count >= demandTierHighCount:
		return "high"
	case count >= demandTierMediumCount:
		return "medium"
	default:
		return "low"
	}
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
