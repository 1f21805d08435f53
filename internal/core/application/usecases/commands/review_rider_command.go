package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrReviewRiderCommandIsNotConstructed = errors.New(
	"ReviewRiderCommand must be created via NewReviewRiderCommand constructor",
)

// ReviewDecision is what an admin decided about a rider.
type ReviewDecision string

const (
	DecisionApprove    ReviewDecision = "approve"
	DecisionDeactivate ReviewDecision = "deactivate"
	DecisionReject     ReviewDecision = "reject"
)

// ReviewRiderCommand carries an admin decision on one rider.
type ReviewRiderCommand struct {
	riderID  kernel.UUID
	decision ReviewDecision
	guard    guard.ConstructorGuard
}

func NewReviewRiderCommand(riderID string, decision ReviewDecision) (ReviewRiderCommand, error) {
	id, idErr := requiredUUID("riderID", riderID)

	var decisionErr error
	switch decision {
	case DecisionApprove, DecisionDeactivate, DecisionReject:
	default:
		decisionErr = errs.NewValueIsInvalidError("decision")
	}

	if err := errors.Join(idErr, decisionErr); err != nil {
		return ReviewRiderCommand{}, err
	}

	return ReviewRiderCommand{
		riderID:  id,
		decision: decision,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewRiderCommand) Validate() error {
	return c.guard.Validate(ErrReviewRiderCommandIsNotConstructed)
}

func (c ReviewRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c ReviewRiderCommand) Decision() ReviewDecision {
	return c.decision
}
