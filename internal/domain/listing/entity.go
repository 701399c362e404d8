// Package listing defines the read-side listing snapshot consumed by the
// intelligence pipeline, the domain events that drive recalculation, and the
// port through which listing data is fetched.  Listing CRUD itself lives in
// another service; this module only ever sees immutable snapshots.
package listing

import (
	"strings"

	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// OwnerStatus is the account state of the listing's owner.
type OwnerStatus string

const (
	OwnerActive    OwnerStatus = "active"
	OwnerPending   OwnerStatus = "pending"
	OwnerSuspended OwnerStatus = "suspended"
)

// Context is the immutable snapshot of one listing used for a single profile
// computation.  It is assembled by the listing service; no field is mutated
// after construction.
type Context struct {
	ID             common.ID
	OwnerID        common.OwnerID
	City           string
	BasePrice      float64
	Currency       string
	Title          string
	Description    string
	PhotoCount     int
	AmenityCount   int
	ReviewCount    int
	BookingCount   int // confirmed bookings only
	AverageRating  float64
	HasCoordinates bool
	OwnerStatus    OwnerStatus
	MaxGuests      int
	Bedrooms       int
	Published      bool
}

// Validate reports whether the snapshot is usable for scoring.  A profile is
// never computed from an invalid context.
func (c *Context) Validate() error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidContext, "listing context is nil")
	}
	if c.ID.IsZero() {
		return errors.New(errors.ErrCodeInvalidContext, "listing id is empty")
	}
	if strings.TrimSpace(c.City) == "" {
		return errors.New(errors.ErrCodeInvalidContext, "listing city is empty").
			WithDetail("listing_id=" + c.ID.String())
	}
	if c.AverageRating < 0 || c.AverageRating > 5 {
		return errors.New(errors.ErrCodeInvalidContext, "average rating out of range").
			WithDetail("listing_id=" + c.ID.String())
	}
	if c.PhotoCount < 0 || c.AmenityCount < 0 || c.ReviewCount < 0 || c.BookingCount < 0 {
		return errors.New(errors.ErrCodeInvalidContext, "negative attribute count").
			WithDetail("listing_id=" + c.ID.String())
	}
	return nil
}

// NormalizedCity returns the city key used for the demand and fallback price
// tables: lower-cased and trimmed.
func (c *Context) NormalizedCity() string {
	return strings.ToLower(strings.TrimSpace(c.City))
}
