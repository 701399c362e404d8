// Package kafka carries listing domain events in and out of the service.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// EventEnvelope is the wire format shared with the listing service.  The
// topic name equals the event kind, so the envelope repeats it only for
// consumers reading merged streams.
type EventEnvelope struct {
	EventID       string    `json:"event_id"`
	Kind          string    `json:"kind"`
	ListingID     string    `json:"listing_id"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Encode serializes a domain event into its wire form.
func Encode(ev listing.Event) ([]byte, error) {
	data, err := json.Marshal(EventEnvelope{
		EventID:       ev.EventID,
		Kind:          string(ev.Kind),
		ListingID:     ev.ListingID.String(),
		ChangedFields: ev.ChangedFields,
		OccurredAt:    ev.OccurredAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode event envelope")
	}
	return data, nil
}

// Decode parses the wire form back into a domain event.  Unknown kinds are
// preserved; the significance filter downstream decides what to do with
// them.
func Decode(data []byte) (listing.Event, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return listing.Event{}, errors.Wrap(err, errors.ErrCodeSerialization, "decode event envelope")
	}
	ev := listing.Event{
		Kind:          listing.EventKind(env.Kind),
		ListingID:     common.ID(env.ListingID),
		ChangedFields: env.ChangedFields,
	}
	ev.EventID = env.EventID
	ev.AggregateID = env.ListingID
	ev.OccurredAt = env.OccurredAt
	return ev, nil
}
