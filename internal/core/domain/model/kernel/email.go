package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"parcelflow/internal/pkg/errs"
)

// Email is a normalized (trimmed, lower-cased) mailbox address. Parcel owners,
// riders and users are all keyed by email in the lifecycle core.
type Email struct {
	address string
}

// NewEmail normalizes and validates an address.
func NewEmail(address string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(normalized)
	if err != nil || parsed.Address != normalized {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare address", address))
	}
	return Email{address: normalized}, nil
}

// IsZero reports whether the email was never set.
func (e Email) IsZero() bool {
	return e.address == ""
}

// IsEqual compares two normalized addresses.
func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}

func (e Email) String() string {
	return e.address
}
