// Package common holds the scalar types and small value objects shared by
// every layer of the listing-intelligence service.
package common

import (
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for an entity identifier (UUID v4 in practice).
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// GenerateID returns a fresh ID with the given prefix (may be empty).
func GenerateID(prefix string) ID {
	if prefix == "" {
		return ID(uuid.New().String())
	}
	return ID(prefix + "_" + uuid.New().String())
}

// OwnerID is a string alias for a listing owner identifier.
type OwnerID string

func (id OwnerID) String() string { return string(id) }

// Timestamp is a time.Time alias used on all persisted and serialized
// records so the wire representation can evolve independently.
type Timestamp time.Time

// Time converts the Timestamp back to a time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// Now returns the current UTC time as a Timestamp.
func Now() Timestamp { return Timestamp(time.Now().UTC()) }

// BaseEvent carries the identity fields every domain event shares.
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBaseEvent constructs a BaseEvent for the given aggregate.
func NewBaseEvent(aggregateID string) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
	}
}

// Pagination defines parameters for paginated requests.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total,omitempty"`
}

// HealthStatus indicates the health of a component or service.
type HealthStatus string

const (
	HealthUp       HealthStatus = "up"
	HealthDown     HealthStatus = "down"
	HealthDegraded HealthStatus = "degraded"
)

// ComponentHealth provides health information for a specific component.
type ComponentHealth struct {
	Name    string        `json:"name"`
	Status  HealthStatus  `json:"status"`
	Latency time.Duration `json:"latency"`
	Message string        `json:"message,omitempty"`
}
