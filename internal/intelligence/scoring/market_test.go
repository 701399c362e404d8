package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// stubReader implements listing.Reader with canned comparable prices.
type stubReader struct {
	prices []float64
	err    error
}

func (s *stubReader) GetContext(context.Context, common.ID) (*listing.Context, error) {
	panic("not used")
}

func (s *stubReader) GetComparablePrices(context.Context, string, common.ID, int) ([]float64, error) {
	return s.prices, s.err
}

func (s *stubReader) ListOwnerListingIDs(context.Context, common.OwnerID) ([]common.ID, error) {
	panic("not used")
}

func TestReferencePrice_MedianOdd(t *testing.T) {
	e := NewMarketEstimator(&stubReader{prices: []float64{1000, 2000, 3000, 4000, 5000}}, 0)
	got := e.ReferencePrice(context.Background(), "berlin", "lst_x")
	assert.Equal(t, 3000.0, got)
}

func TestReferencePrice_MedianEven(t *testing.T) {
	e := NewMarketEstimator(&stubReader{prices: []float64{80, 100, 120, 140, 90, 110}}, 0)
	got := e.ReferencePrice(context.Background(), "berlin", "lst_x")
	assert.Equal(t, 105.0, got)
}

func TestReferencePrice_InputNotMutated(t *testing.T) {
	prices := []float64{50, 10, 30, 20, 40}
	e := NewMarketEstimator(&stubReader{prices: prices}, 0)
	e.ReferencePrice(context.Background(), "berlin", "lst_x")
	assert.Equal(t, []float64{50, 10, 30, 20, 40}, prices)
}

func TestReferencePrice_SmallSampleFallsBack(t *testing.T) {
	e := NewMarketEstimator(&stubReader{prices: []float64{999, 999, 999, 999}}, 0)
	assert.Equal(t, 110.0, e.ReferencePrice(context.Background(), "Berlin", "lst_x"))
}

func TestReferencePrice_ReaderErrorFallsBack(t *testing.T) {
	e := NewMarketEstimator(&stubReader{err: errors.New(errors.ErrCodeDatabaseError, "down")}, 0)
	assert.Equal(t, 160.0, e.ReferencePrice(context.Background(), "paris", "lst_x"))
}

func TestFallbackPrice(t *testing.T) {
	tests := []struct {
		city string
		want float64
	}{
		{"amsterdam", 145},
		{"  Lisbon ", 95},
		{"prague", 75},
		{"atlantis", 100},
		{"", 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackPrice(tt.city), "city: %q", tt.city)
	}
}

func TestDemandCoefficient(t *testing.T) {
	assert.Equal(t, 0.90, DemandCoefficient("Paris"))
	assert.Equal(t, 0.50, DemandCoefficient("atlantis"))
}
