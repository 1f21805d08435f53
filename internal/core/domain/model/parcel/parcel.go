package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
	// ErrCreatedByIsRequired is returned when intake has no owner email.
	ErrCreatedByIsRequired = errs.NewValueIsRequiredError("createdBy")
	// ErrTransactionIDIsRequired is returned when a payment carries no transaction id.
	ErrTransactionIDIsRequired = errs.NewValueIsRequiredError("transactionID")
)

// EarningPolicy computes a rider's payable amount for a completed delivery.
// Parcel consumes it on the delivery transition so the amount is derived from
// the same snapshot that is being written.
type EarningPolicy interface {
	ComputeEarning(cost kernel.Money, senderRegion, receiverRegion kernel.Region) kernel.Money
}

// Params carries the intake data for a new parcel.
type Params struct {
	ID             kernel.UUID
	TrackingID     string
	Title          string
	ParcelType     string
	CreatedBy      kernel.Email
	SenderName     string
	SenderRegion   kernel.Region
	ReceiverName   string
	ReceiverRegion kernel.Region
	Cost           kernel.Money
}

// Snapshot is the full persisted state of a parcel. Repositories build it from
// storage and hand it to RestoreParcel.
type Snapshot struct {
	Params

	Status             Status
	PaymentStatus      PaymentStatus
	DeliveryStatus     DeliveryStatus
	AssignedRiderID    *kernel.UUID
	AssignedRiderEmail kernel.Email
	TransactionID      string
	Earning            *kernel.Money
	CashoutID          *kernel.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	PaidAt             *time.Time
	AssignedAt         *time.Time
	CollectedAt        *time.Time
	DeliveryDate       *time.Time
	CashedOutAt        *time.Time
	Version            int
}

// Parcel is the aggregate root of a shipment. It owns three coupled axes:
//   - status: pending -> rider_assigned -> in_transit -> delivered
//   - paymentStatus: unpaid -> paid -> cashed_out
//   - deliveryStatus: not_collected -> collected -> in_transit -> delivered
//
// Invariants:
//   - assignedRiderID is set if and only if status is rider_assigned or later
//   - earning is set if and only if deliveryStatus is delivered, and is never recomputed
//   - no axis ever moves backwards
//
// version is the optimistic lock read from storage; every write of a fetched
// parcel is conditional on it.
type Parcel struct {
	id             kernel.UUID
	trackingID     string
	title          string
	parcelType     string
	createdBy      kernel.Email
	senderName     string
	senderRegion   kernel.Region
	receiverName   string
	receiverRegion kernel.Region
	cost           kernel.Money

	status         Status
	paymentStatus  PaymentStatus
	deliveryStatus DeliveryStatus

	assignedRiderID    *kernel.UUID
	assignedRiderEmail kernel.Email
	transactionID      string
	earning            *kernel.Money
	cashoutID          *kernel.UUID

	createdAt    time.Time
	updatedAt    time.Time
	paidAt       *time.Time
	assignedAt   *time.Time
	collectedAt  *time.Time
	deliveryDate *time.Time
	cashedOutAt  *time.Time

	version int
	guard   guard.ConstructorGuard
}

// NewParcel registers a parcel at intake: pending, unpaid and not collected.
// A tracking id is generated when params.TrackingID is blank.
//
// Example:
//
//	p, err := parcel.NewParcel(parcel.Params{
//	    ID:             kernel.NewUUID(),
//	    CreatedBy:      owner,
//	    SenderRegion:   dhaka,
//	    ReceiverRegion: dhaka,
//	    Cost:           cost,
//	}, time.Now())
func NewParcel(params Params, now time.Time) (*Parcel, error) {
	p := &Parcel{
		status:         Pending,
		paymentStatus:  Unpaid,
		deliveryStatus: NotCollected,
		createdAt:      now,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}

	if err := p.applyParams(params); err != nil {
		return nil, err
	}
	if p.trackingID == "" {
		p.trackingID = generateTrackingID(p.id, now)
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persisted state and rejects snapshots
// that break the aggregate invariants.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{
		status:             s.Status,
		paymentStatus:      s.PaymentStatus,
		deliveryStatus:     s.DeliveryStatus,
		assignedRiderID:    s.AssignedRiderID,
		assignedRiderEmail: s.AssignedRiderEmail,
		transactionID:      s.TransactionID,
		earning:            s.Earning,
		cashoutID:          s.CashoutID,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		paidAt:             s.PaidAt,
		assignedAt:         s.AssignedAt,
		collectedAt:        s.CollectedAt,
		deliveryDate:       s.DeliveryDate,
		cashedOutAt:        s.CashedOutAt,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.applyParams(s.Params),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		s.DeliveryStatus.Validate(),
		s.Status.ValidateCanHaveRider(s.AssignedRiderID != nil),
		validateEarning(s.DeliveryStatus, s.Earning),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the parcel was built by one of its constructors.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingID() string {
	return p.trackingID
}

func (p *Parcel) Title() string {
	return p.title
}

func (p *Parcel) ParcelType() string {
	return p.parcelType
}

func (p *Parcel) CreatedBy() kernel.Email {
	return p.createdBy
}

func (p *Parcel) SenderName() string {
	return p.senderName
}

func (p *Parcel) SenderRegion() kernel.Region {
	return p.senderRegion
}

func (p *Parcel) ReceiverName() string {
	return p.receiverName
}

func (p *Parcel) ReceiverRegion() kernel.Region {
	return p.receiverRegion
}

func (p *Parcel) Cost() kernel.Money {
	return p.cost
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) PaymentStatus() PaymentStatus {
	return p.paymentStatus
}

func (p *Parcel) DeliveryStatus() DeliveryStatus {
	return p.deliveryStatus
}

func (p *Parcel) AssignedRiderID() *kernel.UUID {
	return p.assignedRiderID
}

func (p *Parcel) AssignedRiderEmail() kernel.Email {
	return p.assignedRiderEmail
}

func (p *Parcel) TransactionID() string {
	return p.transactionID
}

func (p *Parcel) Earning() *kernel.Money {
	return p.earning
}

func (p *Parcel) CashoutID() *kernel.UUID {
	return p.cashoutID
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Parcel) PaidAt() *time.Time {
	return p.paidAt
}

func (p *Parcel) AssignedAt() *time.Time {
	return p.assignedAt
}

func (p *Parcel) CollectedAt() *time.Time {
	return p.collectedAt
}

func (p *Parcel) DeliveryDate() *time.Time {
	return p.deliveryDate
}

func (p *Parcel) CashedOutAt() *time.Time {
	return p.cashedOutAt
}

func (p *Parcel) Version() int {
	return p.version
}

// Snapshot exports the full state for persistence.
func (p *Parcel) Snapshot() Snapshot {
	return Snapshot{
		Params: Params{
			ID:             p.id,
			TrackingID:     p.trackingID,
			Title:          p.title,
			ParcelType:     p.parcelType,
			CreatedBy:      p.createdBy,
			SenderName:     p.senderName,
			SenderRegion:   p.senderRegion,
			ReceiverName:   p.receiverName,
			ReceiverRegion: p.receiverRegion,
			Cost:           p.cost,
		},
		Status:             p.status,
		PaymentStatus:      p.paymentStatus,
		DeliveryStatus:     p.deliveryStatus,
		AssignedRiderID:    p.assignedRiderID,
		AssignedRiderEmail: p.assignedRiderEmail,
		TransactionID:      p.transactionID,
		Earning:            p.earning,
		CashoutID:          p.cashoutID,
		CreatedAt:          p.createdAt,
		UpdatedAt:          p.updatedAt,
		PaidAt:             p.paidAt,
		AssignedAt:         p.assignedAt,
		CollectedAt:        p.collectedAt,
		DeliveryDate:       p.deliveryDate,
		CashedOutAt:        p.cashedOutAt,
		Version:            p.version,
	}
}

func (p *Parcel) HasRider() bool {
	return p.assignedRiderID != nil
}

func (p *Parcel) EarningOrZero() kernel.Money {
	if p.earning == nil {
		return kernel.ZeroMoney()
	}
	return *p.earning
}

// AdvanceTo moves the lifecycle stage forward.
//
// Business rules:
//   - pending and earlier stages are rejected with InvalidTransitionError
//   - advancing to the current stage is a no-op, so retries never recompute earnings
//   - every target after pending requires an assigned rider
//   - delivered also completes the delivery axis and fixes the earning once,
//     computed from this snapshot's cost and regions
//   - in_transit carries a collected parcel's delivery axis along
//
// Returns true when the parcel changed and has to be persisted.
func (p *Parcel) AdvanceTo(target Status, now time.Time, policy EarningPolicy) (bool, error) {
	next, changed, err := p.status.Advance(target)
	if err != nil || !changed {
		return false, err
	}
	if next.RequiresRider() && !p.HasRider() {
		return false, errs.NewInvalidTransitionErrorWithCause(
			"parcel", p.status.String(), next.String(),
			errors.New("no rider is assigned"),
		)
	}

	p.status = next
	p.updatedAt = now

	switch next {
	case InTransit:
		p.carryCollected()
	case Delivered:
		p.deliveryStatus = DeliveryDelivered
		p.deliveryDate = &now
		if p.earning == nil {
			earning := policy.ComputeEarning(p.cost, p.senderRegion, p.receiverRegion)
			p.earning = &earning
		}
	case Unknown, Pending, RiderAssigned:
	}

	return true, nil
}

// MarkCollected records pickup from the sender. It never touches the
// lifecycle stage; collectedAt keeps its first value on retries.
func (p *Parcel) MarkCollected(now time.Time) (bool, error) {
	next, changed, err := p.deliveryStatus.Collect()
	if err != nil || !changed {
		return false, err
	}

	p.deliveryStatus = next
	if p.collectedAt == nil {
		p.collectedAt = &now
	}
	p.updatedAt = now
	return true, nil
}

// AssignRider binds the parcel to a rider and puts it in transit. A parcel
// still waiting for pickup keeps its not_collected delivery state.
// Reassignment to another rider is allowed until delivery; assigning the
// rider that already carries the parcel is a no-op.
func (p *Parcel) AssignRider(riderID kernel.UUID, riderEmail kernel.Email, now time.Time) (bool, error) {
	if err := riderID.Validate(); err != nil {
		return false, err
	}
	if riderEmail.IsZero() {
		return false, errs.NewValueIsRequiredError("riderEmail")
	}
	if p.status == Delivered {
		return false, errs.NewInvalidTransitionError("parcel", p.status.String(), InTransit.String())
	}
	if p.HasRider() && p.assignedRiderID.IsEqual(riderID) &&
		p.assignedRiderEmail.IsEqual(riderEmail) && p.status == InTransit {
		return false, nil
	}

	p.assignedRiderID = &riderID
	p.assignedRiderEmail = riderEmail
	p.status = InTransit
	p.carryCollected()
	p.assignedAt = &now
	p.updatedAt = now
	return true, nil
}

// MarkPaid applies a successful payment. A cashed out parcel stays cashed
// out; the first transaction id and paidAt are kept when the same or a
// duplicate payment is replayed.
func (p *Parcel) MarkPaid(transactionID string, now time.Time) (bool, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return false, ErrTransactionIDIsRequired
	}

	next, changed := p.paymentStatus.Pay()
	p.paymentStatus = next
	if p.transactionID == "" {
		p.transactionID = transactionID
		changed = true
	}
	if p.paidAt == nil {
		p.paidAt = &now
		changed = true
	}
	if changed {
		p.updatedAt = now
	}
	return changed, nil
}

// IsSettleable reports whether the parcel's earning is due for cashout.
func (p *Parcel) IsSettleable() bool {
	delivered := p.deliveryStatus == DeliveryDelivered || p.status == Delivered
	return delivered && !p.paymentStatus.IsCashedOut()
}

// IsEqual compares parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) applyParams(params Params) error {
	p.trackingID = strings.TrimSpace(params.TrackingID)
	p.title = strings.TrimSpace(params.Title)
	p.parcelType = strings.TrimSpace(params.ParcelType)
	p.senderName = strings.TrimSpace(params.SenderName)
	p.receiverName = strings.TrimSpace(params.ReceiverName)

	return errors.Join(
		p.setID(params.ID),
		p.setCreatedBy(params.CreatedBy),
		p.setRegions(params.SenderRegion, params.ReceiverRegion),
		p.setCost(params.Cost),
	)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setCreatedBy(email kernel.Email) error {
	if email.IsZero() {
		return ErrCreatedByIsRequired
	}
	p.createdBy = email
	return nil
}

func (p *Parcel) setRegions(sender, receiver kernel.Region) error {
	if sender.IsZero() || receiver.IsZero() {
		return kernel.ErrRegionIsRequired
	}
	p.senderRegion = sender
	p.receiverRegion = receiver
	return nil
}

func (p *Parcel) setCost(cost kernel.Money) error {
	if cost.IsZero() || cost.Amount().IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid", fmt.Errorf("%s is not greater than 0", cost))
	}
	p.cost = cost
	return nil
}

// carryCollected moves a picked-up parcel's delivery axis along with the
// lifecycle stage.
func (p *Parcel) carryCollected() {
	if p.deliveryStatus == Collected {
		p.deliveryStatus = DeliveryInTransit
	}
}

func validateEarning(deliveryStatus DeliveryStatus, earning *kernel.Money) error {
	delivered := deliveryStatus == DeliveryDelivered
	if delivered == (earning != nil) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"earning is invalid",
		fmt.Errorf("earning must be set only for delivered parcels, delivery status is %s", deliveryStatus),
	)
}

func generateTrackingID(id kernel.UUID, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("PCL-%s-%s", now.UTC().Format("20060102"), short)
}
