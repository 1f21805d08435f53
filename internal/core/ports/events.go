package ports

import (
	"context"
	"time"
)

// Event types published by the lifecycle core.
const (
	EventParcelCreated       = "parcel.created"
	EventParcelStatusChanged = "parcel.status_changed"
	EventParcelDelivered     = "parcel.delivered"
	EventParcelCollected     = "parcel.collected"
	EventParcelAssigned      = "parcel.assigned"
	EventParcelPaid          = "parcel.paid"
	EventRiderCashedOut      = "rider.cashed_out"
)

// Event is a lifecycle notification. Key groups events of one aggregate on
// the same partition.
type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// EventPublisher delivers events after the state they describe was written.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Caller is the identity behind a request as established by the auth layer.
type Caller struct {
	Email   string
	IsAdmin bool
}

// Authorizer verifies a bearer token and resolves the caller's role.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (Caller, error)
}
