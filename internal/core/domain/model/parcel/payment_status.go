package parcel

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// PaymentStatus is the money axis of a parcel: the sender pays, then the
// rider's earning for it is cashed out. It never moves backwards.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	Unpaid
	Paid
	CashedOut
)

func (p PaymentStatus) String() string {
	switch p {
	case Unpaid:
		return "unpaid"
	case Paid:
		return "paid"
	case CashedOut:
		return "cashed_out"
	case PaymentUnknown:
	}
	return "unknown"
}

// ParsePaymentStatus accepts the canonical names case-insensitively.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch normalizeEnum(s) {
	case "unpaid":
		return Unpaid, nil
	case "paid":
		return Paid, nil
	case "cashed_out":
		return CashedOut, nil
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a payment status", s),
	)
}

func (p PaymentStatus) Validate() error {
	if p < Unpaid || p > CashedOut {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// Pay moves Unpaid to Paid. Paid and CashedOut are left as they are so a
// replayed payment never downgrades a settled parcel.
func (p PaymentStatus) Pay() (PaymentStatus, bool) {
	if p == Unpaid {
		return Paid, true
	}
	return p, false
}

// IsCashedOut reports whether the rider earning was already paid out.
func (p PaymentStatus) IsCashedOut() bool {
	return p == CashedOut
}
