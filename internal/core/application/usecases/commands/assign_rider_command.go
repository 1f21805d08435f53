package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand binds a parcel to a rider.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(parcelID, riderID, "rider@example.com")
//	if errors.Is(err, errs.ErrValueIsRequired) {
//	    // one of the three inputs is missing
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignRiderCommand struct {
	parcelID   kernel.UUID
	riderID    kernel.UUID
	riderEmail kernel.Email
	guard      guard.ConstructorGuard
}

func NewAssignRiderCommand(parcelID, riderID, riderEmail string) (AssignRiderCommand, error) {
	pID, parcelErr := requiredUUID("parcelID", parcelID)
	rID, riderErr := requiredUUID("riderID", riderID)
	email, emailErr := requiredEmail("riderEmail", riderEmail)

	if err := errors.Join(parcelErr, riderErr, emailErr); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		parcelID:   pID,
		riderID:    rID,
		riderEmail: email,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c AssignRiderCommand) RiderEmail() kernel.Email {
	return c.riderEmail
}
