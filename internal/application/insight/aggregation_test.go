package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

func seedProfile(st *fakeStore, id common.ID, ownerID common.OwnerID, city string, mutate func(*profile.IntelligenceProfile)) {
	p := storedProfile(id, ownerID, city)
	if mutate != nil {
		mutate(p)
	}
	st.profiles[id] = p
}

func TestGetOwnerSummary_Means(t *testing.T) {
	st := newFakeStore()
	seedProfile(st, "lst_a", "own_1", "berlin", func(p *profile.IntelligenceProfile) {
		p.QualityScore, p.DemandScore, p.RiskScore = 80, 70, 10
		p.BookingProbability, p.RecommendedPrice = 0.8, 100
	})
	seedProfile(st, "lst_b", "own_1", "berlin", func(p *profile.IntelligenceProfile) {
		p.QualityScore, p.DemandScore, p.RiskScore = 60, 50, 30
		p.BookingProbability, p.RecommendedPrice = 0.4, 200
	})
	seedProfile(st, "lst_other", "own_2", "berlin", nil)

	sum, err := NewAggregator(st).GetOwnerSummary(context.Background(), "own_1")
	require.NoError(t, err)

	assert.Equal(t, 2, sum.ListingCount)
	assert.InDelta(t, 70.0, sum.AvgQualityScore, 0.001)
	assert.InDelta(t, 60.0, sum.AvgDemandScore, 0.001)
	assert.InDelta(t, 20.0, sum.AvgRiskScore, 0.001)
	assert.InDelta(t, 0.6, sum.AvgBookingProbability, 0.001)
	// 100*0.8*30 + 200*0.4*30 = 2400 + 2400
	assert.InDelta(t, 4800.0, sum.MonthlyRevenueForecast, 0.001)
	// 0.3*70 + 0.3*60 + 0.2*80 + 0.2*60 = 67 -> good
	assert.Equal(t, HealthGood, sum.Health)
	assert.False(t, sum.GeneratedAt.IsZero())
}

func TestGetOwnerSummary_Empty(t *testing.T) {
	sum, err := NewAggregator(newFakeStore()).GetOwnerSummary(context.Background(), "own_none")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.ListingCount)
	assert.Equal(t, HealthNeedsAttention, sum.Health)
	assert.Zero(t, sum.MonthlyRevenueForecast)
}

func TestHealthTier(t *testing.T) {
	tests := []struct {
		name                            string
		quality, demand, risk, probability float64
		want                            string
	}{
		{"excellent", 90, 85, 10, 0.85, HealthExcellent},
		{"good", 70, 60, 30, 0.5, HealthGood},
		{"needs attention", 30, 30, 70, 0.2, HealthNeedsAttention},
		{"good lower bound", 70, 50, 50, 0.45, HealthGood}, // blend = exactly 55
		{"just under good", 70, 50, 50, 0.40, HealthNeedsAttention},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := healthTier(tt.quality, tt.demand, tt.risk, tt.probability)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetMarketOverview_GroupsAndSorts(t *testing.T) {
	st := newFakeStore()
	for i, price := range []int{100, 120, 140} {
		id := common.ID("lst_b" + string(rune('0'+i)))
		seedProfile(st, id, "own_1", "berlin", func(p *profile.IntelligenceProfile) {
			p.RecommendedPrice = price
			p.QualityScore = 60
		})
	}
	seedProfile(st, "lst_p1", "own_2", "amsterdam", func(p *profile.IntelligenceProfile) {
		p.RecommendedPrice = 150
		p.QualityScore = 80
	})

	ov, err := NewAggregator(st).GetMarketOverview(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ov.Cities, 2)

	assert.Equal(t, "amsterdam", ov.Cities[0].City)
	assert.Equal(t, 1, ov.Cities[0].ListingCount)
	assert.Equal(t, 150.0, ov.Cities[0].MedianRecommendedPrice)

	berlin := ov.Cities[1]
	assert.Equal(t, "berlin", berlin.City)
	assert.Equal(t, 3, berlin.ListingCount)
	assert.Equal(t, 120.0, berlin.MedianRecommendedPrice)
	assert.InDelta(t, 60.0, berlin.AvgQualityScore, 0.001)
	assert.Equal(t, "low", berlin.DemandTier)
}

func TestGetMarketOverview_CityFilter(t *testing.T) {
	st := newFakeStore()
	seedProfile(st, "lst_a", "own_1", "berlin", nil)
	seedProfile(st, "lst_b", "own_1", "lisbon", nil)

	ov, err := NewAggregator(st).GetMarketOverview(context.Background(), "lisbon")
	require.NoError(t, err)
	require.Len(t, ov.Cities, 1)
	assert.Equal(t, "lisbon", ov.Cities[0].City)
}

func TestGetMarketOverview_CityFilterNormalized(t *testing.T) {
	st := newFakeStore()
	seedProfile(st, "lst_a", "own_1", "berlin", nil)

	// Profiles always store the normalized city; the query parameter may
	// arrive in any casing.
	for _, city := range []string{"Berlin", "BERLIN", " berlin "} {
		ov, err := NewAggregator(st).GetMarketOverview(context.Background(), city)
		require.NoError(t, err)
		require.Len(t, ov.Cities, 1, "city: %q", city)
		assert.Equal(t, "berlin", ov.Cities[0].City)
	}
}

func TestDemandTier(t *testing.T) {
	assert.Equal(t, "low", demandTier(9))
	assert.Equal(t, "medium", demandTier(10))
	assert.Equal(t, "medium", demandTier(19))
	assert.Equal(t, "high", demandTier(20))
}

func TestMedianOf(t *testing.T) {
	assert.Equal(t, 0.0, medianOf(nil))
	assert.Equal(t, 7.0, medianOf([]float64{7}))
	assert.Equal(t, 20.0, medianOf([]float64{30, 10, 20}))
	assert.Equal(t, 15.0, medianOf([]float64{10, 20, 30, 5}))
}
