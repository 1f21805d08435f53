// Package riderrepo persists rider aggregates in the riders table.
package riderrepo

import (
	"context"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

const entity = "rider"

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Unavailable("add rider", err)
	}
	return nil
}

// Update writes the rider if the stored version is the one the aggregate
// was read at, and bumps the stored version.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	readVersion := dto.Version
	dto.Version = readVersion + 1

	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ? AND version = ?", dto.ID, readVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Unavailable("update rider", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pgerr.Unavailable("update rider", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entity, aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError(entity + " " + aggregate.ID().String())
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get rider", entity, id.String(), err)
	}
	return toDomain(dto)
}

// GetByEmail retrieves the rider that applied with email.
func (r *GormRiderRepository) GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		return nil, pgerr.Wrap("get rider by email", entity, email.String(), err)
	}
	return toDomain(dto)
}

// Delete removes a rider application.
func (r *GormRiderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RiderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Unavailable("delete rider", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return nil
}

// FindInDelivery retrieves all riders marked as carrying parcels.
func (r *GormRiderRepository) FindInDelivery(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "work_status = ?", rider.InDelivery.String()).Error; err != nil {
		return nil, pgerr.Unavailable("find riders in delivery", err)
	}
	return toDomainList(dtos)
}

// FindIdle retrieves active riders that carry nothing.
func (r *GormRiderRepository) FindIdle(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND work_status = ?", rider.Active.String(), rider.Idle.String()).
		Error
	if err != nil {
		return nil, pgerr.Unavailable("find idle riders", err)
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []RiderDTO) ([]*rider.Rider, error) {
	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, nil
}
