package profile

import (
	"context"

	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// Repository is the profile store port: an idempotent upsert-by-listing cache
// of the last computed profile.  Implementations must make concurrent Upsert
// calls for the same listing safe — each call carries a complete,
// self-consistent replacement record, so last-write-wins is sufficient.
//
// Get returns ErrCodeProfileNotFound on a cold cache.
type Repository interface {
	Get(ctx context.Context, listingID common.ID) (*IntelligenceProfile, error)
	Upsert(ctx context.Context, p *IntelligenceProfile) error
	Delete(ctx context.Context, listingID common.ID) error

	// ListByOwner returns every stored profile for listings owned by ownerID.
	ListByOwner(ctx context.Context, ownerID common.OwnerID) ([]*IntelligenceProfile, error)

	// ListByCity returns every stored profile in the given city; an empty
	// city returns all profiles (used by the whole-market overview).
	ListByCity(ctx context.Context, city string) ([]*IntelligenceProfile, error)
}
