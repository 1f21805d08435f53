package rider

import (
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrNameIsRequired is returned when an application has no rider name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when an application has no rider email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
	// ErrRiderIsNotActive is returned when an inactive or pending rider is asked to deliver.
	ErrRiderIsNotActive = errs.NewValueIsInvalidError("rider is not active")
	// ErrRiderEmailMismatch is returned when the email given for an assignment
	// does not belong to the rider.
	ErrRiderEmailMismatch = errs.NewValueIsInvalidError("rider email does not match")
)

// Application is the data a rider submits when applying.
type Application struct {
	ID       kernel.UUID
	Name     string
	Email    kernel.Email
	Phone    string
	Region   kernel.Region
	District string
}

// Rider is the aggregate root for a courier who carries parcels and earns a
// share of their cost.
//
// Business rules:
//   - A new rider starts pending and idle
//   - Only active riders can start deliveries
//   - Deactivation is allowed for active riders only; pending applications are rejected instead
//   - workStatus in_delivery means at least one parcel assigned to this rider is in transit
//
// version is the optimistic lock read from storage; a write of a fetched
// rider only succeeds while the stored version is unchanged.
type Rider struct {
	id         kernel.UUID
	name       string
	email      kernel.Email
	phone      string
	region     kernel.Region
	district   string
	status     Status
	workStatus WorkStatus
	createdAt  time.Time
	updatedAt  time.Time
	version    int
	guard      guard.ConstructorGuard
}

// NewRider records an application. The rider is pending until an admin approves it.
//
// Example:
//
//	r, err := rider.NewRider(rider.Application{
//	    ID:     kernel.NewUUID(),
//	    Name:   "Karim",
//	    Email:  email,
//	    Region: region,
//	}, time.Now())
func NewRider(app Application, now time.Time) (*Rider, error) {
	r := &Rider{
		status:     Pending,
		workStatus: Idle,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := r.applyApplication(app); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage.
func RestoreRider(
	app Application,
	status Status,
	workStatus WorkStatus,
	createdAt, updatedAt time.Time,
	version int,
) (*Rider, error) {
	r := &Rider{
		status:     status,
		workStatus: workStatus,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		version:    version,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.applyApplication(app),
		status.Validate(),
		workStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the rider was built by one of its constructors.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) Email() kernel.Email {
	return r.email
}

func (r *Rider) Phone() string {
	return r.phone
}

func (r *Rider) Region() kernel.Region {
	return r.region
}

func (r *Rider) District() string {
	return r.district
}

func (r *Rider) Status() Status {
	return r.status
}

func (r *Rider) WorkStatus() WorkStatus {
	return r.workStatus
}

func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rider) UpdatedAt() time.Time {
	return r.updatedAt
}

// Version is the stored version this rider was read at.
func (r *Rider) Version() int {
	return r.version
}

// CanDeliverFor checks that the rider is active and owns email.
func (r *Rider) CanDeliverFor(email kernel.Email) error {
	if r.status != Active {
		return ErrRiderIsNotActive
	}
	if !r.email.IsEqual(email) {
		return ErrRiderEmailMismatch
	}
	return nil
}

// Approve activates a pending or inactive rider. Approving an active rider
// changes nothing.
func (r *Rider) Approve(now time.Time) (bool, error) {
	switch r.status {
	case Active:
		return false, nil
	case Pending, Inactive:
		r.status = Active
		r.updatedAt = now
		return true, nil
	case StatusUnknown:
	}
	return false, r.status.Validate()
}

// Deactivate takes an active rider off duty.
func (r *Rider) Deactivate(now time.Time) (bool, error) {
	switch r.status {
	case Inactive:
		return false, nil
	case Active:
		r.status = Inactive
		r.updatedAt = now
		return true, nil
	case Pending:
		return false, errs.NewInvalidTransitionError("rider", r.status.String(), Inactive.String())
	case StatusUnknown:
	}
	return false, r.status.Validate()
}

// CanBeRejected reports whether the rider is still an unreviewed application.
func (r *Rider) CanBeRejected() error {
	if r.status != Pending {
		return errs.NewInvalidTransitionError("rider", r.status.String(), "rejected")
	}
	return nil
}

// StartDelivery marks the rider as carrying parcels.
func (r *Rider) StartDelivery(now time.Time) (bool, error) {
	if r.status != Active {
		return false, ErrRiderIsNotActive
	}
	if r.workStatus == InDelivery {
		return false, nil
	}
	r.workStatus = InDelivery
	r.updatedAt = now
	return true, nil
}

// Release returns the rider to idle.
func (r *Rider) Release(now time.Time) bool {
	if r.workStatus == Idle {
		return false
	}
	r.workStatus = Idle
	r.updatedAt = now
	return true
}

func (r *Rider) applyApplication(app Application) error {
	r.phone = strings.TrimSpace(app.Phone)
	r.district = strings.TrimSpace(app.District)

	return errors.Join(
		r.setID(app.ID),
		r.setName(app.Name),
		r.setEmail(app.Email),
		r.setRegion(app.Region),
	)
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setEmail(email kernel.Email) error {
	if email.IsZero() {
		return ErrEmailIsRequired
	}
	r.email = email
	return nil
}

func (r *Rider) setRegion(region kernel.Region) error {
	if region.IsZero() {
		return kernel.ErrRegionIsRequired
	}
	r.region = region
	return nil
}
