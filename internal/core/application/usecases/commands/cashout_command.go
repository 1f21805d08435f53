package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrCashoutCommandIsNotConstructed = errors.New(
	"CashoutCommand must be created via NewCashoutCommand constructor",
)

// CashoutCommand settles all of a rider's delivered, not yet cashed out parcels.
type CashoutCommand struct {
	riderEmail kernel.Email
	guard      guard.ConstructorGuard
}

func NewCashoutCommand(riderEmail string) (CashoutCommand, error) {
	email, err := requiredEmail("riderEmail", riderEmail)
	if err != nil {
		return CashoutCommand{}, err
	}
	return CashoutCommand{riderEmail: email, guard: guard.NewConstructorGuard()}, nil
}

func (c CashoutCommand) Validate() error {
	return c.guard.Validate(ErrCashoutCommandIsNotConstructed)
}

func (c CashoutCommand) RiderEmail() kernel.Email {
	return c.riderEmail
}
