package parcelrepo

import (
	"context"
	"time"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entity = "parcel"

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Unavailable("add parcel", err)
	}
	return nil
}

// Update writes every column of the parcel if the stored version is the one
// the aggregate was read at, and bumps the stored version.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	readVersion := dto.Version
	dto.Version = readVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, readVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Unavailable("update parcel", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pgerr.Unavailable("update parcel", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entity, aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError(entity + " " + aggregate.ID().String())
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get parcel", entity, id.String(), err)
	}

	return toDomain(dto)
}

// Delete removes a parcel.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Unavailable("delete parcel", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return nil
}

// normalized folds a status column the way the parcel enums parse it, so rows
// with legacy spellings match the canonical names.
func normalized(column string) string {
	return "REPLACE(REPLACE(LOWER(TRIM(" + column + ")), '-', '_'), ' ', '_')"
}

// FindSettleable returns the rider's delivered parcels that were not cashed out.
func (r *GormParcelRepository) FindSettleable(ctx context.Context, riderEmail kernel.Email) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Where("assigned_rider_email = ?", riderEmail.String()).
		Where(
			"("+normalized("delivery_status")+" IN ? OR "+normalized("status")+" = ?)",
			parcel.DeliveredAliases(), parcel.Delivered.String(),
		).
		Where(normalized("payment_status")+" <> ?", parcel.CashedOut.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Unavailable("find settleable parcels", err)
	}
	return toDomainList(dtos)
}

// MarkCashedOut flips the parcels in one conditional statement. The RETURNING
// clause yields only the rows this statement changed, so two concurrent
// cashouts never both claim the same parcel.
func (r *GormParcelRepository) MarkCashedOut(
	ctx context.Context,
	ids []kernel.UUID,
	batchID kernel.UUID,
	at time.Time,
) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var flipped []struct {
		ID uuid.UUID
	}
	err := r.db.WithContext(ctx).Raw(`
		UPDATE parcels
		SET payment_status = ?,
		    cashout_id = ?,
		    cashed_out_at = ?,
		    updated_at = ?,
		    version = version + 1
		WHERE id IN ? AND `+normalized("payment_status")+` <> ?
		RETURNING id`,
		parcel.CashedOut.String(), batchID.Bytes(), at, at, raw, parcel.CashedOut.String(),
	).Scan(&flipped).Error
	if err != nil {
		return nil, pgerr.Unavailable("mark parcels cashed out", err)
	}

	result := make([]kernel.UUID, 0, len(flipped))
	for _, row := range flipped {
		id, convErr := kernel.UUIDFromBytes(row.ID[:])
		if convErr != nil {
			return nil, convErr
		}
		result = append(result, id)
	}
	return result, nil
}

// FindByCashoutBatch returns the parcels stamped with batchID.
func (r *GormParcelRepository) FindByCashoutBatch(ctx context.Context, batchID kernel.UUID) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos, "cashout_id = ?", batchID.Bytes()).Error; err != nil {
		return nil, pgerr.Unavailable("find parcels by cashout", err)
	}
	return toDomainList(dtos)
}

// ListCashoutBatchIDs returns the distinct batch ids stamped since the given time.
func (r *GormParcelRepository) ListCashoutBatchIDs(ctx context.Context, since time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Distinct("cashout_id").
		Where("cashout_id IS NOT NULL AND cashed_out_at >= ?", since).
		Pluck("cashout_id", &raw).Error
	if err != nil {
		return nil, pgerr.Unavailable("list cashout batches", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, convErr := kernel.UUIDFromBytes(b[:])
		if convErr != nil {
			return nil, convErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CountInTransitForRider counts the rider's parcels that are on the road.
func (r *GormParcelRepository) CountInTransitForRider(ctx context.Context, riderID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("assigned_rider_id = ? AND status = ?", riderID.Bytes(), parcel.InTransit.String()).
		Count(&count).Error
	if err != nil {
		return 0, pgerr.Unavailable("count in-transit parcels", err)
	}
	return count, nil
}
