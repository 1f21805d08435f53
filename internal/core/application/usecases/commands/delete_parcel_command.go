package commands

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand is the administrative removal of a parcel.
type DeleteParcelCommand struct {
	parcelID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewDeleteParcelCommand(parcelID string) (DeleteParcelCommand, error) {
	id, err := requiredUUID("parcelID", parcelID)
	if err != nil {
		return DeleteParcelCommand{}, err
	}
	return DeleteParcelCommand{parcelID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

type DeleteParcelCommandHandler struct {
	parcels ports.ParcelRepository
}

func NewDeleteParcelCommandHandler(parcels ports.ParcelRepository) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{parcels: parcels}
}

// Handle removes the parcel; errs.ObjectNotFoundError when it does not exist.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.parcels.Delete(ctx, cmd.ParcelID())
}
