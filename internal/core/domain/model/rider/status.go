package rider

import (
	"fmt"
	"strings"

	"parcelflow/internal/pkg/errs"
)

// Status is the administrative state of a rider application.
//
//	Pending ──approve──> Active ──deactivate──> Inactive
//	                       ▲                       │
//	                       └───────approve─────────┘
//
// Pending applications can also be rejected, which removes them.
type Status int

const (
	StatusUnknown Status = iota
	Pending
	Active
	Inactive
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case StatusUnknown:
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s < Pending || s > Inactive {
		return errs.NewValueIsInvalidErrorWithCause("rider status is invalid", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}

// ParseStatus accepts "Pending", "Active" and "Inactive" in any casing.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return Pending, nil
	case "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"rider status is invalid",
		fmt.Errorf("%q is not a rider status", s),
	)
}

// WorkStatus tells whether an active rider is currently carrying parcels.
type WorkStatus int

const (
	WorkStatusUnknown WorkStatus = iota
	Idle
	InDelivery
)

func (w WorkStatus) String() string {
	switch w {
	case Idle:
		return "idle"
	case InDelivery:
		return "in_delivery"
	case WorkStatusUnknown:
	}
	return "unknown"
}

func (w WorkStatus) Validate() error {
	if w != Idle && w != InDelivery {
		return errs.NewValueIsInvalidErrorWithCause("work status is invalid", fmt.Errorf("%d is not a valid work status", w))
	}
	return nil
}

// ParseWorkStatus accepts "Idle", "In Delivery", "in-delivery" and "in_delivery".
func ParseWorkStatus(s string) (WorkStatus, error) {
	normalized := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "idle":
		return Idle, nil
	case "in_delivery":
		return InDelivery, nil
	}
	return WorkStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"work status is invalid",
		fmt.Errorf("%q is not a work status", s),
	)
}
