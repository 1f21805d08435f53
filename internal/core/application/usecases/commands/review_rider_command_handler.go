package commands

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// ReviewRiderResult reports the writes performed by a review.
type ReviewRiderResult struct {
	RiderUpdated bool
	RoleSynced   bool
	Deleted      bool
}

// ReviewRiderCommandHandler applies admin decisions to rider applications.
//
// Approval and deactivation write the rider first and the account role
// second. The role always follows the rider status, so re-running the same
// decision after errs.PartialFailureError with step role_update repairs it.
type ReviewRiderCommandHandler struct {
	riders ports.RiderRepository
	users  ports.UserDirectory
	now    func() time.Time
}

func NewReviewRiderCommandHandler(riders ports.RiderRepository, users ports.UserDirectory) ReviewRiderCommandHandler {
	return ReviewRiderCommandHandler{riders: riders, users: users, now: time.Now}
}

func (h ReviewRiderCommandHandler) Handle(ctx context.Context, cmd ReviewRiderCommand) (ReviewRiderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReviewRiderResult{}, err
	}

	if cmd.Decision() == DecisionReject {
		return h.reject(ctx, cmd)
	}

	now := h.now().UTC()
	role := user.RoleRider
	if cmd.Decision() == DecisionDeactivate {
		role = user.RoleUser
	}

	r, changed, err := updateRider(ctx, h.riders, cmd.RiderID(), func(r *rider.Rider) (bool, error) {
		if cmd.Decision() == DecisionDeactivate {
			return r.Deactivate(now)
		}
		return r.Approve(now)
	})
	if err != nil {
		return ReviewRiderResult{}, err
	}

	var result ReviewRiderResult
	completed := []string{}
	if changed {
		result.RiderUpdated = true
		completed = append(completed, StepRiderUpdate)
	}

	if err = h.syncRole(ctx, r, role); err != nil {
		return result, errs.NewPartialFailureError(
			"review_rider", StepRoleUpdate, completed,
			[]string{r.ID().String(), r.Email().String()}, err,
		)
	}
	result.RoleSynced = true

	return result, nil
}

func (h ReviewRiderCommandHandler) reject(ctx context.Context, cmd ReviewRiderCommand) (ReviewRiderResult, error) {
	r, err := h.riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return ReviewRiderResult{}, err
	}
	if err = r.CanBeRejected(); err != nil {
		return ReviewRiderResult{}, err
	}
	if err = h.riders.Delete(ctx, r.ID()); err != nil {
		return ReviewRiderResult{}, err
	}
	return ReviewRiderResult{Deleted: true}, nil
}

// syncRole makes sure the rider's account holds role, registering the
// account first when the rider never signed in. Admins keep their role.
func (h ReviewRiderCommandHandler) syncRole(ctx context.Context, r *rider.Rider, role user.Role) error {
	account, err := user.NewUser(r.Email(), r.Name(), h.now().UTC())
	if err != nil {
		return err
	}
	if _, err = h.users.Register(ctx, account); err != nil {
		return err
	}

	current, err := h.users.GetByEmail(ctx, r.Email())
	if err != nil {
		return err
	}
	if current.IsAdmin() || current.Role() == role {
		return nil
	}
	return h.users.SetRole(ctx, r.Email(), role)
}
