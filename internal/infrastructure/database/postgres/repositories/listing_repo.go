// Package repositories contains the PostgreSQL implementations of the domain
// repository ports.
package repositories

import (
	"context"
	"database/sql"
	gerrors "errors"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// ListingRepository reads listing snapshots from the replicated listings
// table.  It implements listing.Reader.
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository wires a listing reader over the given pool.
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const getContextQuery = `
SELECT id, owner_id, city, base_price, currency, title, description,
       photo_count, amenity_count, review_count, booking_count,
       average_rating, has_coordinates, owner_status, max_guests, bedrooms,
       published
FROM listings
WHERE id = $1`

// GetContext assembles the scoring snapshot for one listing.
func (r *ListingRepository) GetContext(ctx context.Context, id common.ID) (*listing.Context, error) {
	var c listing.Context
	err := r.db.QueryRowContext(ctx, getContextQuery, id.String()).Scan(
		&c.ID, &c.OwnerID, &c.City, &c.BasePrice, &c.Currency, &c.Title,
		&c.Description, &c.PhotoCount, &c.AmenityCount, &c.ReviewCount,
		&c.BookingCount, &c.AverageRating, &c.HasCoordinates, &c.OwnerStatus,
		&c.MaxGuests, &c.Bedrooms, &c.Published,
	)
	if gerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeListingNotFound, "listing not found").
			WithDetail(id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query listing context")
	}
	return &c, nil
}

const comparablePricesQuery = `
SELECT base_price
FROM listings
WHERE lower(city) = lower($1)
  AND id <> $2
  AND published
  AND base_price > 0
ORDER BY id
LIMIT $3`

// GetComparablePrices returns the base prices of published listings in the
// same city.  The stable ordering keeps the sample reproducible between
// calls against unchanged data.
func (r *ListingRepository) GetComparablePrices(ctx context.Context, city string, excludeID common.ID, limit int) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, comparablePricesQuery, city, excludeID.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query comparable prices")
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan comparable price")
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate comparable prices")
	}
	return prices, nil
}

const ownerListingIDsQuery = `
SELECT id
FROM listings
WHERE owner_id = $1
ORDER BY id`

// ListOwnerListingIDs returns every listing id the owner has.
func (r *ListingRepository) ListOwnerListingIDs(ctx context.Context, ownerID common.OwnerID) ([]common.ID, error) {
	rows, err := r.db.QueryContext(ctx, ownerListingIDsQuery, string(ownerID))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query owner listings")
	}
	defer rows.Close()

	var ids []common.ID
	for rows.Next() {
		var id common.ID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan listing id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate owner listings")
	}
	return ids, nil
}
