package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/guard"
)

var ErrMarkCollectedCommandIsNotConstructed = errors.New(
	"MarkCollectedCommand must be created via NewMarkCollectedCommand constructor",
)

// MarkCollectedCommand records that a parcel was picked up from its sender.
// Collection is distinct from delivery: the lifecycle stage is not touched.
type MarkCollectedCommand struct {
	parcelID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewMarkCollectedCommand(parcelID string) (MarkCollectedCommand, error) {
	id, err := requiredUUID("parcelID", parcelID)
	if err != nil {
		return MarkCollectedCommand{}, err
	}
	return MarkCollectedCommand{parcelID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkCollectedCommand) Validate() error {
	return c.guard.Validate(ErrMarkCollectedCommandIsNotConstructed)
}

func (c MarkCollectedCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// MarkCollectedResult tells whether this call changed the parcel.
type MarkCollectedResult struct {
	Changed        bool
	DeliveryStatus parcel.DeliveryStatus
}

type MarkCollectedCommandHandler struct {
	parcels  ports.ParcelRepository
	notifier notifier
	now      func() time.Time
}

func NewMarkCollectedCommandHandler(
	parcels ports.ParcelRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MarkCollectedCommandHandler {
	return MarkCollectedCommandHandler{
		parcels:  parcels,
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

// Handle is idempotent: collecting twice keeps the first collectedAt.
// Concurrent writers are handled by re-reading and re-applying.
func (h MarkCollectedCommandHandler) Handle(ctx context.Context, cmd MarkCollectedCommand) (MarkCollectedResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkCollectedResult{}, err
	}

	now := h.now().UTC()
	p, changed, err := updateParcel(ctx, h.parcels, cmd.ParcelID(), func(p *parcel.Parcel) (bool, error) {
		return p.MarkCollected(now)
	})
	if err != nil {
		return MarkCollectedResult{}, err
	}

	if changed {
		h.notifier.notify(ctx, parcelEvent(ports.EventParcelCollected, p))
	}

	return MarkCollectedResult{Changed: changed, DeliveryStatus: p.DeliveryStatus()}, nil
}
