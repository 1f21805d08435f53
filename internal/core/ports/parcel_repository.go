// Package ports defines the contracts between the lifecycle core and its
// collaborators: the entity store, the event bus and the authorization layer.
package ports

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Every single-document write of a fetched parcel is a compare-and-set on the
// version that was read. Store failures other than a missing document are
// reported as errs.StoreUnavailableError.
type ParcelRepository interface {
	// Add persists a new parcel.
	Add(ctx context.Context, p *parcel.Parcel) error

	// Update writes p only if the stored version still equals p.Version().
	// A concurrent change yields errs.VersionIsInvalidError and nothing is written.
	Update(ctx context.Context, p *parcel.Parcel) error

	// Get retrieves a parcel or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// Delete removes a parcel. Administrative only.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindSettleable returns the rider's delivered parcels that are not cashed out yet.
	FindSettleable(ctx context.Context, riderEmail kernel.Email) ([]*parcel.Parcel, error)

	// MarkCashedOut flips the given parcels to cashed_out in one conditional
	// statement, stamping batchID and at on each. Parcels that were already
	// cashed out are skipped; the returned ids are exactly those this call flipped.
	MarkCashedOut(ctx context.Context, ids []kernel.UUID, batchID kernel.UUID, at time.Time) ([]kernel.UUID, error)

	// FindByCashoutBatch returns the parcels stamped with batchID.
	FindByCashoutBatch(ctx context.Context, batchID kernel.UUID) ([]*parcel.Parcel, error)

	// ListCashoutBatchIDs returns the distinct batch ids stamped since the given time.
	ListCashoutBatchIDs(ctx context.Context, since time.Time) ([]kernel.UUID, error)

	// CountInTransitForRider counts the rider's parcels whose stage is in_transit.
	CountInTransitForRider(ctx context.Context, riderID kernel.UUID) (int64, error)
}
