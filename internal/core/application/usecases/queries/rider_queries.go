package queries

import (
	"context"
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListRidersQueryIsNotConstructed = errors.New(
		"ListRidersQuery must be created via NewListRidersQuery constructor",
	)
	ErrListRidersWithUnsettledQueryIsNotConstructed = errors.New(
		"ListRidersWithUnsettledQuery must be created via NewListRidersWithUnsettledQuery constructor",
	)
	ErrPendingDeliveriesQueryIsNotConstructed = errors.New(
		"PendingDeliveriesQuery must be created via NewPendingDeliveriesQuery constructor",
	)
)

// ListRidersQuery lists riders in one administrative status, optionally in
// one region. Admins use it for the pending and active rider screens.
type ListRidersQuery struct {
	status rider.Status
	region string
	guard  guard.ConstructorGuard
}

func NewListRidersQuery(status, region string) (ListRidersQuery, error) {
	if strings.TrimSpace(status) == "" {
		return ListRidersQuery{}, errs.NewValueIsRequiredError("status")
	}
	parsed, err := rider.ParseStatus(status)
	if err != nil {
		return ListRidersQuery{}, err
	}

	q := ListRidersQuery{status: parsed, guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(region) != "" {
		r, regionErr := kernel.NewRegion(region)
		if regionErr != nil {
			return ListRidersQuery{}, regionErr
		}
		q.region = r.String()
	}
	return q, nil
}

// NewActiveRidersByRegionQuery lists the riders that can take assignments.
func NewActiveRidersByRegionQuery(region string) (ListRidersQuery, error) {
	return NewListRidersQuery(rider.Active.String(), region)
}

func (q ListRidersQuery) Validate() error {
	return q.guard.Validate(ErrListRidersQueryIsNotConstructed)
}

func (q ListRidersQuery) Status() rider.Status {
	return q.status
}

func (q ListRidersQuery) Region() string {
	return q.region
}

type ListRidersQueryHandler struct {
	db *gorm.DB
}

func NewListRidersQueryHandler(db *gorm.DB) ListRidersQueryHandler {
	return ListRidersQueryHandler{db: db}
}

func (h ListRidersQueryHandler) Handle(ctx context.Context, query ListRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("riders").Where("status = ?", query.Status().String())
	if query.Region() != "" {
		tx = tx.Where("LOWER(region) = LOWER(?)", query.Region())
	}

	riders := make([]RiderView, 0)
	if err := tx.Order("created_at").Scan(&riders).Error; err != nil {
		return nil, errs.NewStoreUnavailableError("list riders", err)
	}
	return riders, nil
}

// ListRidersWithUnsettledQuery finds the riders that have delivered parcels
// waiting for cashout.
type ListRidersWithUnsettledQuery struct {
	guard guard.ConstructorGuard
}

func NewListRidersWithUnsettledQuery() ListRidersWithUnsettledQuery {
	return ListRidersWithUnsettledQuery{guard: guard.NewConstructorGuard()}
}

func (q ListRidersWithUnsettledQuery) Validate() error {
	return q.guard.Validate(ErrListRidersWithUnsettledQueryIsNotConstructed)
}

type ListRidersWithUnsettledQueryHandler struct {
	db *gorm.DB
}

func NewListRidersWithUnsettledQueryHandler(db *gorm.DB) ListRidersWithUnsettledQueryHandler {
	return ListRidersWithUnsettledQueryHandler{db: db}
}

// Handle returns rider emails in lexical order.
func (h ListRidersWithUnsettledQueryHandler) Handle(
	ctx context.Context,
	query ListRidersWithUnsettledQuery,
) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	emails := make([]string, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT assigned_rider_email
		FROM parcels
		WHERE assigned_rider_email <> ''
			AND (`+normalized("delivery_status")+` IN ? OR `+normalized("status")+` = ?)
			AND `+normalized("payment_status")+` <> ?
		ORDER BY assigned_rider_email
	`, parcel.DeliveredAliases(), parcel.Delivered.String(), parcel.CashedOut.String()).
		Scan(&emails).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list riders with unsettled parcels", err)
	}
	return emails, nil
}

// PendingDeliveriesQuery lists the parcels a rider is currently carrying.
type PendingDeliveriesQuery struct {
	riderEmail string
	guard      guard.ConstructorGuard
}

func NewPendingDeliveriesQuery(riderEmail string) (PendingDeliveriesQuery, error) {
	email, err := requiredEmail("riderEmail", riderEmail)
	if err != nil {
		return PendingDeliveriesQuery{}, err
	}
	return PendingDeliveriesQuery{riderEmail: email.String(), guard: guard.NewConstructorGuard()}, nil
}

func (q PendingDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrPendingDeliveriesQueryIsNotConstructed)
}

func (q PendingDeliveriesQuery) RiderEmail() string {
	return q.riderEmail
}

type PendingDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewPendingDeliveriesQueryHandler(db *gorm.DB) PendingDeliveriesQueryHandler {
	return PendingDeliveriesQueryHandler{db: db}
}

// Handle returns the rider's in-transit parcels, oldest assignment first.
func (h PendingDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query PendingDeliveriesQuery,
) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]ParcelView, 0)
	err := h.db.WithContext(ctx).Table("parcels").
		Where("assigned_rider_email = ? AND status = ?", query.RiderEmail(), parcel.InTransit.String()).
		Order("assigned_at").
		Scan(&parcels).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list pending deliveries", err)
	}
	return parcels, nil
}
