// Package cashout holds the settlement ledger entry. One Record is written
// per cashout batch and lists exactly the parcels that batch flipped to
// cashed_out.
package cashout

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

var (
	ErrRiderEmailIsRequired = errs.NewValueIsRequiredError("riderEmail")
	ErrParcelIDsAreRequired = errs.NewValueIsRequiredError("parcelIDs")
)

// Record is an immutable ledger entry. Its id is the batch id that is also
// stamped on every settled parcel, so a missing record can be rebuilt from
// the parcels alone.
type Record struct {
	id           kernel.UUID
	riderEmail   kernel.Email
	parcelIDs    []kernel.UUID
	totalEarning kernel.Money
	cashedOutAt  time.Time
}

// NewRecord validates a batch. parcelIDs must be the ids the batch actually
// flipped, not the ids it selected.
func NewRecord(
	batchID kernel.UUID,
	riderEmail kernel.Email,
	parcelIDs []kernel.UUID,
	totalEarning kernel.Money,
	cashedOutAt time.Time,
) (Record, error) {
	var emailErr, idsErr error
	if riderEmail.IsZero() {
		emailErr = ErrRiderEmailIsRequired
	}
	if len(parcelIDs) == 0 {
		idsErr = ErrParcelIDsAreRequired
	}
	if err := errors.Join(batchID.Validate(), emailErr, idsErr); err != nil {
		return Record{}, err
	}

	ids := make([]kernel.UUID, len(parcelIDs))
	copy(ids, parcelIDs)

	return Record{
		id:           batchID,
		riderEmail:   riderEmail,
		parcelIDs:    ids,
		totalEarning: totalEarning,
		cashedOutAt:  cashedOutAt,
	}, nil
}

func (r Record) ID() kernel.UUID {
	return r.id
}

func (r Record) RiderEmail() kernel.Email {
	return r.riderEmail
}

// ParcelIDs returns a copy of the settled ids.
func (r Record) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(r.parcelIDs))
	copy(ids, r.parcelIDs)
	return ids
}

func (r Record) ParcelCount() int {
	return len(r.parcelIDs)
}

func (r Record) TotalEarning() kernel.Money {
	return r.totalEarning
}

func (r Record) CashedOutAt() time.Time {
	return r.cashedOutAt
}
