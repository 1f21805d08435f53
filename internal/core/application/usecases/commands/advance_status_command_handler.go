package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// AdvanceStatusResult describes the parcel after the call.
type AdvanceStatusResult struct {
	Changed       bool
	Status        parcel.Status
	Earning       *kernel.Money
	RiderReleased bool
}

// AdvanceStatusCommandHandler applies lifecycle transitions.
//
// The parcel write is conditional on the version that was read, so the
// earning is always computed from the snapshot being replaced. A concurrent
// change fails the call with errs.VersionIsInvalidError and writes nothing.
//
// After delivery the rider is released to idle when it carries no other
// parcel in transit. This second write is re-attempted on every call that
// finds the parcel delivered, so retrying after errs.PartialFailureError
// completes it.
type AdvanceStatusCommandHandler struct {
	parcels  ports.ParcelRepository
	riders   ports.RiderRepository
	policy   parcel.EarningPolicy
	notifier notifier
	now      func() time.Time
}

func NewAdvanceStatusCommandHandler(
	parcels ports.ParcelRepository,
	riders ports.RiderRepository,
	policy parcel.EarningPolicy,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		parcels:  parcels,
		riders:   riders,
		policy:   policy,
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceStatusCommand) (AdvanceStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceStatusResult{}, err
	}

	p, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return AdvanceStatusResult{}, err
	}

	now := h.now().UTC()
	changed, err := p.AdvanceTo(cmd.Target(), now, h.policy)
	if err != nil {
		return AdvanceStatusResult{}, err
	}

	if changed {
		if err = h.parcels.Update(ctx, p); err != nil {
			return AdvanceStatusResult{}, err
		}
		h.notifier.notify(ctx, parcelEvent(ports.EventParcelStatusChanged, p))
		if p.Status() == parcel.Delivered {
			h.notifier.notify(ctx, parcelEvent(ports.EventParcelDelivered, p))
		}
	}

	result := AdvanceStatusResult{
		Changed: changed,
		Status:  p.Status(),
		Earning: p.Earning(),
	}

	if p.Status() != parcel.Delivered || !p.HasRider() {
		return result, nil
	}

	released, err := releaseIdleRider(ctx, h.parcels, h.riders, *p.AssignedRiderID(), now)
	if err != nil {
		completed := []string{}
		if changed {
			completed = append(completed, StepParcelUpdate)
		}
		return result, errs.NewPartialFailureError(
			"advance_status", StepRiderRelease, completed,
			[]string{p.ID().String(), p.AssignedRiderID().String()}, err,
		)
	}
	result.RiderReleased = released

	return result, nil
}

// releaseIdleRider puts the rider back to idle when none of its parcels is
// still in transit. The parcels are counted after each read of the rider so
// an assignment that lands in between keeps the rider busy. A rider that no
// longer exists needs no release.
func releaseIdleRider(
	ctx context.Context,
	parcels ports.ParcelRepository,
	riders ports.RiderRepository,
	riderID kernel.UUID,
	now time.Time,
) (bool, error) {
	_, released, err := updateRider(ctx, riders, riderID, func(r *rider.Rider) (bool, error) {
		if r.WorkStatus() == rider.Idle {
			return false, nil
		}
		inTransit, err := parcels.CountInTransitForRider(ctx, riderID)
		if err != nil || inTransit > 0 {
			return false, err
		}
		return r.Release(now), nil
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	return released, err
}
