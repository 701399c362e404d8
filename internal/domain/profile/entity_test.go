package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{34.99, RiskLow},
		{35, RiskMedium},
		{59.99, RiskMedium},
		{60, RiskHigh},
		{100, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelForScore(tt.score), "score: %v", tt.score)
	}
}

func TestMarketPositionForDelta(t *testing.T) {
	tests := []struct {
		delta int
		want  MarketPosition
	}{
		{0, AtMarket},
		{9, AtMarket},
		{-9, AtMarket},
		{10, BelowMarket},
		{42, BelowMarket},
		{-10, AboveMarket},
		{-30, AboveMarket},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MarketPositionForDelta(tt.delta), "delta: %d", tt.delta)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-3))
	assert.Equal(t, 100.0, ClampScore(123))
	assert.Equal(t, 57.5, ClampScore(57.5))
}

func TestClampProbability(t *testing.T) {
	assert.Equal(t, 0.05, ClampProbability(0))
	assert.Equal(t, 0.95, ClampProbability(1.2))
	assert.Equal(t, 0.42, ClampProbability(0.42))
}

func validProfile() *IntelligenceProfile {
	return &IntelligenceProfile{
		ListingID:          "lst_1",
		OwnerID:            "own_1",
		City:               "berlin",
		QualityScore:       70,
		DemandScore:        55,
		RiskScore:          20,
		CompletenessScore:  80,
		BookingProbability: 0.6,
		RecommendedPrice:   120,
		PriceDeltaPercent:  4,
		MarketPosition:     AtMarket,
		RiskLevel:          RiskLow,
		CalculatedAt:       time.Now().UTC(),
		CalcVersion:        CalcVersion,
	}
}

func TestProfileValidate_OK(t *testing.T) {
	assert.NoError(t, validProfile().Validate())
}

func TestProfileValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IntelligenceProfile)
	}{
		{"empty listing id", func(p *IntelligenceProfile) { p.ListingID = "" }},
		{"quality out of range", func(p *IntelligenceProfile) { p.QualityScore = 101 }},
		{"risk negative", func(p *IntelligenceProfile) { p.RiskScore = -1 }},
		{"probability too low", func(p *IntelligenceProfile) { p.BookingProbability = 0.01 }},
		{"level drift", func(p *IntelligenceProfile) { p.RiskLevel = RiskHigh }},
		{"position drift", func(p *IntelligenceProfile) { p.MarketPosition = AboveMarket }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestStale(t *testing.T) {
	p := validProfile()
	assert.False(t, p.Stale(CalcVersion))
	assert.True(t, p.Stale("2099.01"))
}
