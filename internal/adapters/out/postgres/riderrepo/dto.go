package riderrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the row layout of a rider application.
type RiderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	Email      string    `gorm:"uniqueIndex;not null"`
	Phone      string
	Region     string    `gorm:"index;not null"`
	District   string
	Status     string    `gorm:"index;not null"`
	WorkStatus string    `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false"`
	Version    int       `gorm:"not null;default:0"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:         r.ID().Bytes(),
		Name:       r.Name(),
		Email:      r.Email().String(),
		Phone:      r.Phone(),
		Region:     r.Region().String(),
		District:   r.District(),
		Status:     r.Status().String(),
		WorkStatus: r.WorkStatus().String(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
		Version:    r.Version(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	region, err := kernel.NewRegion(dto.Region)
	if err != nil {
		return nil, err
	}
	status, err := rider.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	workStatus, err := rider.ParseWorkStatus(dto.WorkStatus)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(rider.Application{
		ID:       id,
		Name:     dto.Name,
		Email:    email,
		Phone:    dto.Phone,
		Region:   region,
		District: dto.District,
	}, status, workStatus, dto.CreatedAt, dto.UpdatedAt, dto.Version)
}
