// Package trackingrepo appends tracking updates to the tracking_updates table.
package trackingrepo

import (
	"context"
	"database/sql"
	"time"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackingUpdateDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID   *uuid.UUID `gorm:"type:uuid;index"`
	TrackingID string     `gorm:"index"`
	Status     string     `gorm:"not null"`
	Location   string
	Notes      string
	Lat        sql.NullFloat64
	Lng        sql.NullFloat64
	CreatedAt  time.Time  `gorm:"autoCreateTime:false;index"`
}

func (TrackingUpdateDTO) TableName() string {
	return "tracking_updates"
}

type GormTrackingLog struct {
	db *gorm.DB
}

func NewGormTrackingLog(db *gorm.DB) *GormTrackingLog {
	return &GormTrackingLog{db: db}
}

func (r *GormTrackingLog) Append(ctx context.Context, update tracking.Update) error {
	dto := TrackingUpdateDTO{
		ID:         update.ID().Bytes(),
		TrackingID: update.TrackingID(),
		Status:     update.Status(),
		Location:   update.Location(),
		Notes:      update.Notes(),
		CreatedAt:  update.CreatedAt(),
	}
	if id := update.ParcelID(); id != nil {
		raw := id.Bytes()
		dto.ParcelID = &raw
	}
	if c := update.Coordinates(); c != nil {
		dto.Lat = sql.NullFloat64{Float64: c.Lat, Valid: true}
		dto.Lng = sql.NullFloat64{Float64: c.Lng, Valid: true}
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Unavailable("append tracking update", err)
	}
	return nil
}
