package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// fakeReader serves listing snapshots and comparable prices from maps.
type fakeReader struct {
	contexts map[common.ID]*listing.Context
	prices   map[string][]float64
}

func (f *fakeReader) GetContext(_ context.Context, id common.ID) (*listing.Context, error) {
	c, ok := f.contexts[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeListingNotFound, "listing not found").WithDetail(id.String())
	}
	return c, nil
}

func (f *fakeReader) GetComparablePrices(_ context.Context, city string, _ common.ID, limit int) ([]float64, error) {
	p := f.prices[city]
	if len(p) > limit {
		p = p[:limit]
	}
	return p, nil
}

func (f *fakeReader) ListOwnerListingIDs(_ context.Context, ownerID common.OwnerID) ([]common.ID, error) {
	var ids []common.ID
	for id, c := range f.contexts {
		if c.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func goodListing() *listing.Context {
	return &listing.Context{
		ID:             "lst_good",
		OwnerID:        "own_1",
		City:           "Berlin",
		BasePrice:      100,
		Currency:       "EUR",
		Title:          "Sunny two-bedroom flat in Mitte",
		Description:    "A quiet flat two minutes from the metro station, in a lively neighborhood with cafes nearby. Self check-in, no smoking. Sleeps four comfortably with a full kitchen and fast wifi, freshly renovated last spring with new furniture throughout the whole space.",
		PhotoCount:     9,
		AmenityCount:   10,
		ReviewCount:    15,
		BookingCount:   12,
		AverageRating:  4.7,
		HasCoordinates: true,
		OwnerStatus:    listing.OwnerActive,
		Published:      true,
	}
}

func neglectedListing() *listing.Context {
	return &listing.Context{
		ID:          "lst_neglected",
		OwnerID:     "own_2",
		City:        "Berlin",
		BasePrice:   45,
		Title:       "Flat",
		Description: "Nice place.",
		OwnerStatus: listing.OwnerPending,
	}
}

func newTestOrchestrator(r *fakeReader) *Orchestrator {
	return New(r, 0, logging.NewNopLogger())
}

func TestComputeProfile_GoodListing(t *testing.T) {
	r := &fakeReader{
		contexts: map[common.ID]*listing.Context{"lst_good": goodListing()},
		prices:   map[string][]float64{"berlin": {90, 95, 100, 105, 110, 115, 120}},
	}
	p, err := newTestOrchestrator(r).ComputeProfile(context.Background(), "lst_good")
	require.NoError(t, err)

	assert.Equal(t, common.ID("lst_good"), p.ListingID)
	assert.Equal(t, common.OwnerID("own_1"), p.OwnerID)
	assert.Equal(t, "berlin", p.City)
	assert.Equal(t, profile.CalcVersion, p.CalcVersion)
	assert.False(t, p.CalculatedAt.IsZero())

	assert.Greater(t, p.QualityScore, 80.0)
	assert.Equal(t, profile.RiskLow, p.RiskLevel)
	assert.Empty(t, p.RiskFactors)
	assert.Equal(t, 100.0, p.CompletenessScore)
	assert.Greater(t, p.BookingProbability, 0.5)
	assert.Greater(t, p.RecommendedPrice, 0)
	assert.NotEmpty(t, p.Explanation.Summary)
	assert.NoError(t, p.Validate())
}

func TestComputeProfile_NeglectedListing(t *testing.T) {
	r := &fakeReader{
		contexts: map[common.ID]*listing.Context{"lst_neglected": neglectedListing()},
	}
	p, err := newTestOrchestrator(r).ComputeProfile(context.Background(), "lst_neglected")
	require.NoError(t, err)

	assert.Equal(t, 83.0, p.RiskScore)
	assert.Equal(t, profile.RiskHigh, p.RiskLevel)
	assert.Len(t, p.RiskFactors, 5)
	assert.LessOrEqual(t, p.QualityScore, 15.0)
	assert.Less(t, p.CompletenessScore, 50.0)
	assert.NoError(t, p.Validate())
}

func TestComputeProfile_NotFound(t *testing.T) {
	r := &fakeReader{contexts: map[common.ID]*listing.Context{}}
	p, err := newTestOrchestrator(r).ComputeProfile(context.Background(), "lst_ghost")
	assert.Nil(t, p)
	assert.True(t, errors.IsNotFound(err))
}

func TestComputeProfile_InvalidContext(t *testing.T) {
	c := goodListing()
	c.City = "  "
	r := &fakeReader{contexts: map[common.ID]*listing.Context{"lst_good": c}}
	p, err := newTestOrchestrator(r).ComputeProfile(context.Background(), "lst_good")
	assert.Nil(t, p)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidContext))
}

func TestComputeProfile_FallbackPriceWhenFewComparables(t *testing.T) {
	c := goodListing()
	r := &fakeReader{
		contexts: map[common.ID]*listing.Context{"lst_good": c},
		prices:   map[string][]float64{"berlin": {100, 100}},
	}
	p, err := newTestOrchestrator(r).ComputeProfile(context.Background(), "lst_good")
	require.NoError(t, err)
	// Reference falls back to berlin's 110 and the premiums push above it.
	assert.Greater(t, p.RecommendedPrice, 110)
}

func TestBookingProbability(t *testing.T) {
	tests := []struct {
		name     string
		quality  float64
		demand   float64
		risk     float64
		position profile.MarketPosition
		want     float64
	}{
		{"balanced", 50, 50, 50, profile.AtMarket, 0.50},
		{"strong below market", 80, 80, 20, profile.BelowMarket, 0.92},
		{"strong above market", 80, 80, 20, profile.AboveMarket, 0.68},
		{"floor", 0, 0, 100, profile.AboveMarket, 0.05},
		{"ceiling", 100, 100, 0, profile.BelowMarket, 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bookingProbability(tt.quality, tt.demand, tt.risk, tt.position)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestCompletenessScore(t *testing.T) {
	assert.Equal(t, 100.0, CompletenessScore(goodListing()))

	// Title 8 (short) + description 8 (short) + price 10 = 26.
	assert.Equal(t, 26.0, CompletenessScore(neglectedListing()))

	empty := &listing.Context{ID: "lst_empty", City: "berlin"}
	assert.Equal(t, 0.0, CompletenessScore(empty))
}

func TestCompletenessScore_PartialBands(t *testing.T) {
	c := &listing.Context{
		ID:           "lst_part",
		City:         "berlin",
		Title:        "Cosy studio",          // 11 chars -> 8
		Description:  string(make([]byte, 60)), // 60 chars -> 15
		PhotoCount:   3,                        // -> 15
		AmenityCount: 3,                        // -> 8
		BasePrice:    80,                       // -> 10
	}
	assert.Equal(t, 56.0, CompletenessScore(c))
}
