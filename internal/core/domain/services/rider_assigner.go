package services

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/rider"
)

// Assignment reports which aggregates RiderAssigner changed and therefore
// must be written back.
type Assignment struct {
	ParcelChanged bool
	RiderChanged  bool
}

// RiderAssigner binds a parcel to a rider across the two aggregates.
//
// Business rules:
//   - Both aggregates must be valid
//   - The rider must be active and riderEmail must be its own email
//   - The parcel must not be delivered yet
//   - The parcel moves to in_transit and the rider to in_delivery
//
// Nothing is mutated when a rule fails. The caller persists the parcel
// first and the rider second; re-running the assignment after a partial
// write only reports the aggregate that still differs.
type RiderAssigner struct{}

// NewRiderAssigner creates a new RiderAssigner instance.
func NewRiderAssigner() RiderAssigner {
	return RiderAssigner{}
}

// Assign validates both sides and applies the assignment in memory.
func (RiderAssigner) Assign(p *parcel.Parcel, r *rider.Rider, riderEmail kernel.Email, now time.Time) (Assignment, error) {
	if err := p.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := r.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := r.CanDeliverFor(riderEmail); err != nil {
		return Assignment{}, err
	}

	parcelChanged, err := p.AssignRider(r.ID(), riderEmail, now)
	if err != nil {
		return Assignment{}, err
	}

	riderChanged, err := r.StartDelivery(now)
	if err != nil {
		return Assignment{}, err
	}

	return Assignment{ParcelChanged: parcelChanged, RiderChanged: riderChanged}, nil
}
