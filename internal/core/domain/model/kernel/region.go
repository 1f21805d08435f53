package kernel

import (
	"strings"

	"parcelflow/internal/pkg/errs"
)

// ErrRegionIsRequired is returned for an empty region name.
var ErrRegionIsRequired = errs.NewValueIsRequiredError("region")

// Region names the delivery area a sender, receiver or rider belongs to.
// Regions are free-form names; two regions match when their trimmed names
// are equal ignoring case ("Dhaka" and " dhaka" are the same region).
type Region struct {
	name string
}

// NewRegion trims the name and rejects blanks.
func NewRegion(name string) (Region, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Region{}, ErrRegionIsRequired
	}
	return Region{name: trimmed}, nil
}

// IsSame reports whether both values denote the same region.
func (r Region) IsSame(other Region) bool {
	return strings.EqualFold(r.name, other.name)
}

// IsZero reports whether the region was never set.
func (r Region) IsZero() bool {
	return r.name == ""
}

func (r Region) String() string {
	return r.name
}
