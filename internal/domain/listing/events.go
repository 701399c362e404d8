package listing

import (
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// EventKind discriminates the domain events the recalculation controller
// subscribes to.  The values double as Kafka topic names.
type EventKind string

const (
	EventListingCreated   EventKind = "listing.created"
	EventListingUpdated   EventKind = "listing.updated"
	EventListingPublished EventKind = "listing.published"
	EventBookingCreated   EventKind = "booking.created"
	EventBookingConfirmed EventKind = "booking.confirmed"
	EventBookingCanceled  EventKind = "booking.canceled"
	EventReviewAdded      EventKind = "review.added"
)

// AllEventKinds lists every event kind this module consumes, in topic order.
func AllEventKinds() []EventKind {
	return []EventKind{
		EventListingCreated,
		EventListingUpdated,
		EventListingPublished,
		EventBookingCreated,
		EventBookingConfirmed,
		EventBookingCanceled,
		EventReviewAdded,
	}
}

// Known reports whether k is one of the event kinds this module understands.
func (k EventKind) Known() bool {
	switch k {
	case EventListingCreated, EventListingUpdated, EventListingPublished,
		EventBookingCreated, EventBookingConfirmed, EventBookingCanceled,
		EventReviewAdded:
		return true
	}
	return false
}

// Event is one domain event carrying, at minimum, the affected listing.
// ChangedFields is populated only for listing.updated events.
type Event struct {
	common.BaseEvent
	Kind          EventKind `json:"kind"`
	ListingID     common.ID `json:"listing_id"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
}

// NewEvent constructs an Event for the given kind and listing.
func NewEvent(kind EventKind, listingID common.ID, changedFields ...string) Event {
	return Event{
		BaseEvent:     common.NewBaseEvent(listingID.String()),
		Kind:          kind,
		ListingID:     listingID,
		ChangedFields: changedFields,
	}
}
