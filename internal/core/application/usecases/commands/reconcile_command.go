package commands

import (
	"errors"
	"time"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

// ReconcileCommand asks for a repair pass over writes made since Since.
type ReconcileCommand struct {
	since time.Time
	guard guard.ConstructorGuard
}

var ErrReconcileCommandIsNotConstructed = errors.New(
	"ReconcileCommand must be created via NewReconcileCommand constructor",
)

func NewReconcileCommand(since time.Time) (ReconcileCommand, error) {
	if since.IsZero() {
		return ReconcileCommand{}, errs.NewValueIsRequiredError("since")
	}
	return ReconcileCommand{since: since.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCommandIsNotConstructed)
}

func (c ReconcileCommand) Since() time.Time {
	return c.since
}
