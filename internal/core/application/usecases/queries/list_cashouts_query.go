package queries

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListCashoutsQueryIsNotConstructed = errors.New(
	"ListCashoutsQuery must be created via NewListCashoutsQuery constructor",
)

// ListCashoutsQuery lists a rider's settlement ledger, newest first.
type ListCashoutsQuery struct {
	riderEmail kernel.Email
	guard      guard.ConstructorGuard
}

func NewListCashoutsQuery(riderEmail string) (ListCashoutsQuery, error) {
	email, err := requiredEmail("riderEmail", riderEmail)
	if err != nil {
		return ListCashoutsQuery{}, err
	}
	return ListCashoutsQuery{riderEmail: email, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCashoutsQuery) Validate() error {
	return q.guard.Validate(ErrListCashoutsQueryIsNotConstructed)
}

func (q ListCashoutsQuery) RiderEmail() kernel.Email {
	return q.riderEmail
}

type ListCashoutsQueryHandler struct {
	db *gorm.DB
}

func NewListCashoutsQueryHandler(db *gorm.DB) ListCashoutsQueryHandler {
	return ListCashoutsQueryHandler{db: db}
}

func (h ListCashoutsQueryHandler) Handle(ctx context.Context, query ListCashoutsQuery) ([]CashoutView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]CashoutView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, rider_email, parcel_ids, parcel_count, total_earning, cashed_out_at
		FROM cashouts
		WHERE rider_email = ?
		ORDER BY cashed_out_at DESC
	`, query.RiderEmail().String()).Scan(&views).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list cashouts", err)
	}
	return views, nil
}
