package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// AssignmentResult reports which writes this call performed. Writes that
// were already in place from an earlier call are not repeated.
type AssignmentResult struct {
	ParcelUpdated bool
	RiderUpdated  bool
}

// AssignRiderCommandHandler binds a parcel to an active rider.
//
// Write order is parcel first, rider second; there is no transaction across
// the two. When the rider write fails after the parcel write succeeded the
// handler returns errs.PartialFailureError with step rider_update, and the
// caller can simply re-run the command to complete it. The rider write is
// conditional on the stored version; a rider deactivated after it was read is
// not put back on duty.
type AssignRiderCommandHandler struct {
	parcels  ports.ParcelRepository
	riders   ports.RiderRepository
	assigner services.RiderAssigner
	notifier notifier
	now      func() time.Time
}

func NewAssignRiderCommandHandler(
	parcels ports.ParcelRepository,
	riders ports.RiderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		parcels:  parcels,
		riders:   riders,
		assigner: services.NewRiderAssigner(),
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	p, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return AssignmentResult{}, err
	}
	r, err := h.riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return AssignmentResult{}, err
	}

	var previousRider *kernel.UUID
	if p.HasRider() && !p.AssignedRiderID().IsEqual(r.ID()) {
		id := *p.AssignedRiderID()
		previousRider = &id
	}

	now := h.now().UTC()
	assignment, err := h.assigner.Assign(p, r, cmd.RiderEmail(), now)
	if err != nil {
		return AssignmentResult{}, err
	}

	ids := []string{p.ID().String(), r.ID().String()}
	var result AssignmentResult
	completed := []string{}

	if assignment.ParcelChanged {
		if err = h.parcels.Update(ctx, p); err != nil {
			return AssignmentResult{}, err
		}
		result.ParcelUpdated = true
		completed = append(completed, StepParcelUpdate)
		h.notifier.notify(ctx, parcelEvent(ports.EventParcelAssigned, p))
	}

	if assignment.RiderChanged {
		_, changed, err := updateRider(ctx, h.riders, r.ID(), func(current *rider.Rider) (bool, error) {
			if err := current.CanDeliverFor(cmd.RiderEmail()); err != nil {
				return false, err
			}
			return current.StartDelivery(now)
		})
		if err != nil {
			return result, partialOrPlain("assign_rider", StepRiderUpdate, completed, ids, err)
		}
		result.RiderUpdated = changed
		completed = append(completed, StepRiderUpdate)
	}

	if previousRider != nil && result.ParcelUpdated {
		if _, err = releaseIdleRider(ctx, h.parcels, h.riders, *previousRider, now); err != nil {
			return result, errs.NewPartialFailureError(
				"assign_rider", StepPreviousRiderRelease, completed,
				append(ids, previousRider.String()), err,
			)
		}
	}

	return result, nil
}

// partialOrPlain wraps err as a partial failure only when an earlier step of
// the same call was persisted.
func partialOrPlain(operation, step string, completed, ids []string, err error) error {
	if len(completed) == 0 {
		return err
	}
	return errs.NewPartialFailureError(operation, step, completed, ids, err)
}
