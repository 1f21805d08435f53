package queries

import (
	"context"
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel by id.
type GetParcelQuery struct {
	parcelID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID string) (GetParcelQuery, error) {
	parcelID = strings.TrimSpace(parcelID)
	if parcelID == "" {
		return GetParcelQuery{}, errs.NewValueIsRequiredError("parcelID")
	}
	id, err := kernel.UUIDFromString(parcelID)
	if err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{parcelID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for unknown ids.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	var view ParcelView
	result := h.db.WithContext(ctx).Raw(`
		SELECT *
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Scan(&view)
	if result.Error != nil {
		return ParcelView{}, errs.NewStoreUnavailableError("get parcel", result.Error)
	}
	if result.RowsAffected == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
	}
	return view, nil
}
