package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ev := listing.NewEvent(listing.EventListingUpdated, "lst_42", "basePrice", "title")

	data, err := Encode(ev)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ev.Kind, got.Kind)
	assert.Equal(t, common.ID("lst_42"), got.ListingID)
	assert.Equal(t, []string{"basePrice", "title"}, got.ChangedFields)
	assert.Equal(t, ev.EventID, got.EventID)
	assert.WithinDuration(t, ev.OccurredAt, got.OccurredAt, 0)
}

func TestDecode_PreservesUnknownKind(t *testing.T) {
	got, err := Decode([]byte(`{"event_id":"e1","kind":"listing.viewed","listing_id":"lst_1"}`))
	require.NoError(t, err)
	assert.Equal(t, listing.EventKind("listing.viewed"), got.Kind)
	assert.False(t, got.Kind.Known())
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}
