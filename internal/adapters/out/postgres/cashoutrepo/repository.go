// Package cashoutrepo stores the settlement ledger in the cashouts table.
package cashoutrepo

import (
	"context"
	"time"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CashoutDTO is one ledger row. Its id is the batch id stamped on the parcels
// it settled.
type CashoutDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RiderEmail   string          `gorm:"index;not null"`
	ParcelIDs    pq.StringArray  `gorm:"type:text[];not null"`
	ParcelCount  int             `gorm:"not null"`
	TotalEarning decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CashedOutAt  time.Time       `gorm:"index;not null"`
}

func (CashoutDTO) TableName() string {
	return "cashouts"
}

// GormCashoutLedger implements ports.CashoutLedger using GORM.
type GormCashoutLedger struct {
	db *gorm.DB
}

func NewGormCashoutLedger(db *gorm.DB) *GormCashoutLedger {
	return &GormCashoutLedger{db: db}
}

// Add writes record once per batch id; a second write of the same batch is
// reported as not inserted.
func (r *GormCashoutLedger) Add(ctx context.Context, record cashout.Record) (bool, error) {
	dto := CashoutDTO{
		ID:           record.ID().Bytes(),
		RiderEmail:   record.RiderEmail().String(),
		ParcelIDs:    pq.StringArray(kernel.UUIDStrings(record.ParcelIDs())),
		ParcelCount:  record.ParcelCount(),
		TotalEarning: record.TotalEarning().Amount(),
		CashedOutAt:  record.CashedOutAt(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, pgerr.Unavailable("add cashout", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *GormCashoutLedger) Exists(ctx context.Context, batchID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&CashoutDTO{}).Where("id = ?", batchID.Bytes()).Count(&count).Error; err != nil {
		return false, pgerr.Unavailable("check cashout", err)
	}
	return count > 0, nil
}
