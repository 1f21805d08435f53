package parcel

import (
	"fmt"
	"slices"

	"parcelflow/internal/pkg/errs"
)

// DeliveryStatus is the physical-handling axis of a parcel.
//
//	NotCollected ──> Collected ──> InTransit ──> Delivered
//
// Collected means picked up from the sender; Delivered means handed to the
// receiver. The two are deliberately distinct.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	NotCollected
	Collected
	DeliveryInTransit
	DeliveryDelivered
)

func (d DeliveryStatus) String() string {
	switch d {
	case NotCollected:
		return "not_collected"
	case Collected:
		return "collected"
	case DeliveryInTransit:
		return "in_transit"
	case DeliveryDelivered:
		return "delivered"
	case DeliveryUnknown:
	}
	return "unknown"
}

// deliveredAliases are the normalized names that fold into DeliveryDelivered.
var deliveredAliases = []string{"delivered", "service_center_deliver", "service_center_delivered"}

// DeliveredAliases returns every normalized spelling of a completed delivery,
// for stores that filter on the raw column.
func DeliveredAliases() []string {
	return slices.Clone(deliveredAliases)
}

// ParseDeliveryStatus accepts the canonical names plus the legacy
// spellings "Not Collected", "In-Transit" and "service_center_deliver";
// the last one denotes a completed hand-off and folds into DeliveryDelivered.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	name := normalizeEnum(s)
	if slices.Contains(deliveredAliases, name) {
		return DeliveryDelivered, nil
	}
	switch name {
	case "not_collected":
		return NotCollected, nil
	case "collected":
		return Collected, nil
	case "in_transit":
		return DeliveryInTransit, nil
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a delivery status", s),
	)
}

func (d DeliveryStatus) Validate() error {
	if d < NotCollected || d > DeliveryDelivered {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid", fmt.Errorf("%d is not a valid delivery status", d))
	}
	return nil
}

// Collect moves a parcel that has not been picked up to Collected.
// Collected and InTransit are already past pickup and stay unchanged;
// a delivered parcel cannot be collected again.
func (d DeliveryStatus) Collect() (DeliveryStatus, bool, error) {
	switch d {
	case NotCollected:
		return Collected, true, nil
	case Collected, DeliveryInTransit:
		return d, false, nil
	case DeliveryDelivered:
		return d, false, errs.NewInvalidTransitionError("parcel delivery", d.String(), Collected.String())
	case DeliveryUnknown:
	}
	return d, false, d.Validate()
}
