package listing

import (
	"context"

	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// Reader is the port through which the intelligence pipeline fetches listing
// data.  The listing service owns the data; this module only reads snapshots.
//
// GetContext returns ErrCodeListingNotFound when no such listing exists.
type Reader interface {
	// GetContext assembles the immutable scoring snapshot for one listing.
	GetContext(ctx context.Context, id common.ID) (*Context, error)

	// GetComparablePrices returns the base prices of up to limit published
	// listings in the given city, excluding excludeID.  Order is unspecified.
	GetComparablePrices(ctx context.Context, city string, excludeID common.ID, limit int) ([]float64, error)

	// ListOwnerListingIDs returns the identifiers of every listing owned by
	// ownerID, published or not.
	ListOwnerListingIDs(ctx context.Context, ownerID common.OwnerID) ([]common.ID, error)
}
