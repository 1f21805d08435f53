package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, r *rider.Rider) error

	// Update returns errs.VersionIsInvalidError when the stored rider changed
	// since r was read.
	Update(ctx context.Context, r *rider.Rider) error
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetByEmail returns errs.ObjectNotFoundError when no rider applied with email.
	GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error)

	// Delete removes a rider application.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindInDelivery returns every rider whose work status is in_delivery.
	FindInDelivery(ctx context.Context) ([]*rider.Rider, error)

	// FindIdle returns every active rider whose work status is idle.
	FindIdle(ctx context.Context) ([]*rider.Rider, error)
}
