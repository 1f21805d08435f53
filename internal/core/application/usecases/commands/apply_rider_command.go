package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrApplyRiderCommandIsNotConstructed = errors.New(
	"ApplyRiderCommand must be created via NewApplyRiderCommand constructor",
)

type ApplyRiderInput struct {
	Name     string
	Email    string
	Phone    string
	Region   string
	District string
}

// ApplyRiderCommand submits a rider application for admin review.
type ApplyRiderCommand struct {
	app   rider.Application
	guard guard.ConstructorGuard
}

func NewApplyRiderCommand(input ApplyRiderInput) (ApplyRiderCommand, error) {
	name, nameErr := requiredString("name", input.Name)
	email, emailErr := requiredEmail("email", input.Email)
	region, regionErr := kernel.NewRegion(input.Region)

	if err := errors.Join(nameErr, emailErr, regionErr); err != nil {
		return ApplyRiderCommand{}, err
	}

	return ApplyRiderCommand{
		app: rider.Application{
			ID:       kernel.NewUUID(),
			Name:     name,
			Email:    email,
			Phone:    strings.TrimSpace(input.Phone),
			Region:   region,
			District: strings.TrimSpace(input.District),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyRiderCommand) Validate() error {
	return c.guard.Validate(ErrApplyRiderCommandIsNotConstructed)
}

func (c ApplyRiderCommand) Application() rider.Application {
	return c.app
}

// ApplyRiderResult identifies the application. Created is false when the
// email had already applied and the existing rider is returned.
type ApplyRiderResult struct {
	RiderID kernel.UUID
	Created bool
}

type ApplyRiderCommandHandler struct {
	riders ports.RiderRepository
	now    func() time.Time
}

func NewApplyRiderCommandHandler(riders ports.RiderRepository) ApplyRiderCommandHandler {
	return ApplyRiderCommandHandler{riders: riders, now: time.Now}
}

func (h ApplyRiderCommandHandler) Handle(ctx context.Context, cmd ApplyRiderCommand) (ApplyRiderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyRiderResult{}, err
	}

	existing, err := h.riders.GetByEmail(ctx, cmd.Application().Email)
	switch {
	case err == nil:
		return ApplyRiderResult{RiderID: existing.ID()}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return ApplyRiderResult{}, err
	}

	r, err := rider.NewRider(cmd.Application(), h.now().UTC())
	if err != nil {
		return ApplyRiderResult{}, err
	}
	if err = h.riders.Add(ctx, r); err != nil {
		return ApplyRiderResult{}, err
	}

	return ApplyRiderResult{RiderID: r.ID(), Created: true}, nil
}
