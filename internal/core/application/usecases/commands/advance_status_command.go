package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand moves a parcel's lifecycle stage forward.
//
// Example:
//
//	cmd, err := NewAdvanceStatusCommand(parcelID, "Delivered")
//	if err != nil {
//	    // errs.ErrValueIsRequired or errs.ErrValueIsInvalid: rejected before any read
//	}
//	result, err := handler.Handle(ctx, cmd)
type AdvanceStatusCommand struct {
	parcelID kernel.UUID
	target   parcel.Status
	guard    guard.ConstructorGuard
}

// NewAdvanceStatusCommand parses the target stage. Unrecognized names fail
// with errs.ValueIsInvalidError.
func NewAdvanceStatusCommand(parcelID, targetStatus string) (AdvanceStatusCommand, error) {
	id, idErr := requiredUUID("parcelID", parcelID)

	var target parcel.Status
	status, statusErr := requiredString("status", targetStatus)
	if statusErr == nil {
		target, statusErr = parcel.ParseStatus(status)
	}

	if err := errors.Join(idErr, statusErr); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return AdvanceStatusCommand{
		parcelID: id,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

func (c AdvanceStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c AdvanceStatusCommand) Target() parcel.Status {
	return c.target
}
