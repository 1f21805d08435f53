// Package paymentrepo stores the append-only payment history.
package paymentrepo

import (
	"context"
	"time"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentDTO is one row of payment_history. transaction_id is unique so a
// replayed confirmation is absorbed by the insert itself.
type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	TransactionID string          `gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Email         string          `gorm:"index;not null"`
	Status        string          `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;index"`
}

func (PaymentDTO) TableName() string {
	return "payment_history"
}

// GormPaymentHistory implements ports.PaymentHistoryRepository using GORM.
type GormPaymentHistory struct {
	db *gorm.DB
}

func NewGormPaymentHistory(db *gorm.DB) *GormPaymentHistory {
	return &GormPaymentHistory{db: db}
}

// Add inserts entry unless its transaction id was recorded before.
func (r *GormPaymentHistory) Add(ctx context.Context, entry payment.Entry) (bool, error) {
	dto := PaymentDTO{
		ID:            entry.ID().Bytes(),
		ParcelID:      entry.ParcelID().Bytes(),
		TransactionID: entry.TransactionID(),
		Amount:        entry.Amount().Amount(),
		Email:         entry.Email().String(),
		Status:        entry.Status(),
		CreatedAt:     entry.CreatedAt(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "transaction_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, pgerr.Unavailable("add payment", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *GormPaymentHistory) GetByTransactionID(ctx context.Context, transactionID string) (payment.Entry, error) {
	var dto PaymentDTO
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&dto).Error
	if err != nil {
		return payment.Entry{}, pgerr.Wrap("get payment", "payment", transactionID, err)
	}
	return toDomain(dto)
}

// ListSince returns entries created at or after since, oldest first.
func (r *GormPaymentHistory) ListSince(ctx context.Context, since time.Time) ([]payment.Entry, error) {
	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos, "created_at >= ?", since).Error; err != nil {
		return nil, pgerr.Unavailable("list payments", err)
	}

	entries := make([]payment.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toDomain(dto PaymentDTO) (payment.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return payment.Entry{}, err
	}
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return payment.Entry{}, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return payment.Entry{}, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return payment.Entry{}, err
	}
	return payment.RestoreEntry(id, parcelID, dto.TransactionID, amount, email, dto.Status, dto.CreatedAt)
}
