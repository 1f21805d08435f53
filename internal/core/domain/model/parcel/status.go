package parcel

import (
	"fmt"
	"strings"

	"parcelflow/internal/pkg/errs"
)

// Status represents the lifecycle stage of a parcel.
// Stages are ordered; a parcel only ever moves forward.
//
// State transitions:
//
//	Pending ──> RiderAssigned ──> InTransit ──> Delivered
//	   │                              ▲
//	   └──────── (rider assignment) ──┘
//
// Stages may be skipped forward but never revisited. Every stage after
// Pending requires an assigned rider.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the intake stage; no rider is assigned yet.
	Pending

	// RiderAssigned indicates a rider has been bound to the parcel.
	RiderAssigned

	// InTransit indicates the assigned rider is carrying the parcel.
	InTransit

	// Delivered is terminal: the parcel reached its receiver and the
	// rider's earning has been fixed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "unknown",
		Pending:       "pending",
		RiderAssigned: "rider_assigned",
		InTransit:     "in_transit",
		Delivered:     "delivered",
	}
}

func getValidStatuses() map[string]Status {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[string]Status{
		"pending":        Pending,
		"rider_assigned": RiderAssigned,
		"in_transit":     InTransit,
		"delivered":      Delivered,
	}
}

// normalizeEnum folds the spellings seen in stored documents and client
// payloads ("In-Transit", "Not Collected", "Delivered") onto the canonical
// lower snake case form.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseStatus converts a status name into a Status. Matching is
// case-insensitive and tolerant of hyphen/space separators; unrecognized
// names are rejected with a ValueIsInvalidError.
//
// Example:
//
//	target, err := parcel.ParseStatus("Delivered")  // parcel.Delivered
//	_, err = parcel.ParseStatus("shipped")          // errs.ErrValueIsInvalid
func ParseStatus(s string) (Status, error) {
	if status, ok := getValidStatuses()[normalizeEnum(s)]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a parcel status", s),
	)
}

// Validate checks if the Status value is one of the defined stages.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// RequiresRider reports whether a parcel in this stage must reference a rider.
func (s Status) RequiresRider() bool {
	return s >= RiderAssigned
}

// ValidateCanHaveRider checks the consistency between the stage and the
// rider reference: a rider is present if and only if the stage is
// RiderAssigned or later.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && !s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}
	if !hasRider && s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}
	return nil
}

// Advance validates a move to target.
//
// Returns:
//   - (target, true, nil) for a forward move
//   - (s, false, nil) when target equals the current stage, so retries are no-ops
//   - (s, false, InvalidTransitionError) for Pending or any earlier stage
//   - (s, false, ValueIsInvalidError) for an undefined target
func (s Status) Advance(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}
	if target == s {
		return s, false, nil
	}
	if target == Pending || target < s {
		return s, false, errs.NewInvalidTransitionError("parcel", s.String(), target.String())
	}
	return target, true, nil
}
