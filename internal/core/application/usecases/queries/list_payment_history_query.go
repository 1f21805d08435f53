package queries

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListPaymentHistoryQueryIsNotConstructed = errors.New(
	"ListPaymentHistoryQuery must be created via NewListPaymentHistoryQuery constructor",
)

// ListPaymentHistoryQuery lists the payments made by one payer, newest first.
type ListPaymentHistoryQuery struct {
	email kernel.Email
	guard guard.ConstructorGuard
}

func NewListPaymentHistoryQuery(email string) (ListPaymentHistoryQuery, error) {
	parsed, err := requiredEmail("email", email)
	if err != nil {
		return ListPaymentHistoryQuery{}, err
	}
	return ListPaymentHistoryQuery{email: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPaymentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentHistoryQueryIsNotConstructed)
}

func (q ListPaymentHistoryQuery) Email() kernel.Email {
	return q.email
}

type ListPaymentHistoryQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentHistoryQueryHandler(db *gorm.DB) ListPaymentHistoryQueryHandler {
	return ListPaymentHistoryQueryHandler{db: db}
}

func (h ListPaymentHistoryQueryHandler) Handle(ctx context.Context, query ListPaymentHistoryQuery) ([]PaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]PaymentView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, parcel_id, transaction_id, amount, email, status, created_at
		FROM payment_history
		WHERE email = ?
		ORDER BY created_at DESC
	`, query.Email().String()).Scan(&views).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list payment history", err)
	}
	return views, nil
}
