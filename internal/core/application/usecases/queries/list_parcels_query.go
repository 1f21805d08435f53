package queries

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

const (
	defaultParcelListLimit = 100
	maxParcelListLimit     = 500
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ParcelFilter narrows a parcel listing. Empty fields match everything.
// Status values accept the legacy spellings and are stored canonically.
type ParcelFilter struct {
	CreatedBy     string
	RiderEmail    string
	Status        string
	PaymentStatus string
	Limit         int
}

// ListParcelsQuery lists parcels newest first.
//
// Example:
//
//	query, err := queries.NewListParcelsQuery(queries.ParcelFilter{CreatedBy: "sender@example.com"})
//	if err != nil {
//	    return err
//	}
//	parcels, err := queries.NewListParcelsQueryHandler(db).Handle(ctx, query)
type ListParcelsQuery struct {
	filter ParcelFilter
	guard  guard.ConstructorGuard
}

func NewListParcelsQuery(filter ParcelFilter) (ListParcelsQuery, error) {
	createdBy, createdByErr := optionalEmail(filter.CreatedBy)
	riderEmail, riderErr := optionalEmail(filter.RiderEmail)

	var statusErr, paymentErr, limitErr error
	if filter.Status != "" {
		var status parcel.Status
		if status, statusErr = parcel.ParseStatus(filter.Status); statusErr == nil {
			filter.Status = status.String()
		}
	}
	if filter.PaymentStatus != "" {
		var payment parcel.PaymentStatus
		if payment, paymentErr = parcel.ParsePaymentStatus(filter.PaymentStatus); paymentErr == nil {
			filter.PaymentStatus = payment.String()
		}
	}
	switch {
	case filter.Limit == 0:
		filter.Limit = defaultParcelListLimit
	case filter.Limit < 0 || filter.Limit > maxParcelListLimit:
		limitErr = errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, maxParcelListLimit)
	}

	if err := errors.Join(createdByErr, riderErr, statusErr, paymentErr, limitErr); err != nil {
		return ListParcelsQuery{}, err
	}

	filter.CreatedBy = createdBy
	filter.RiderEmail = riderEmail
	return ListParcelsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Filter() ParcelFilter {
	return q.filter
}

type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	tx := h.db.WithContext(ctx).Table("parcels")
	if f.CreatedBy != "" {
		tx = tx.Where("created_by = ?", f.CreatedBy)
	}
	if f.RiderEmail != "" {
		tx = tx.Where("assigned_rider_email = ?", f.RiderEmail)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		tx = tx.Where("payment_status = ?", f.PaymentStatus)
	}

	views := make([]ParcelView, 0)
	if err := tx.Order("created_at DESC").Limit(f.Limit).Scan(&views).Error; err != nil {
		return nil, errs.NewStoreUnavailableError("list parcels", err)
	}
	return views, nil
}
