package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListTrackingQueryIsNotConstructed = errors.New(
	"ListTrackingQuery must be created via NewListTrackingQuery constructor",
)

// ListTrackingQuery lists tracking updates by tracking id, parcel id or both,
// newest first. With neither reference every update is returned.
type ListTrackingQuery struct {
	trackingID string
	parcelID   *kernel.UUID
	guard      guard.ConstructorGuard
}

func NewListTrackingQuery(trackingID, parcelID string) (ListTrackingQuery, error) {
	q := ListTrackingQuery{
		trackingID: strings.TrimSpace(trackingID),
		guard:      guard.NewConstructorGuard(),
	}
	if parcelID = strings.TrimSpace(parcelID); parcelID != "" {
		id, err := kernel.UUIDFromString(parcelID)
		if err != nil {
			return ListTrackingQuery{}, err
		}
		q.parcelID = &id
	}
	return q, nil
}

func (q ListTrackingQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingQueryIsNotConstructed)
}

func (q ListTrackingQuery) TrackingID() string {
	return q.trackingID
}

func (q ListTrackingQuery) ParcelID() *kernel.UUID {
	return q.parcelID
}

type ListTrackingQueryHandler struct {
	db *gorm.DB
}

func NewListTrackingQueryHandler(db *gorm.DB) ListTrackingQueryHandler {
	return ListTrackingQueryHandler{db: db}
}

func (h ListTrackingQueryHandler) Handle(ctx context.Context, query ListTrackingQuery) ([]TrackingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if query.TrackingID() != "" {
		conditions = append(conditions, "tracking_id = ?")
		args = append(args, query.TrackingID())
	}
	if query.ParcelID() != nil {
		conditions = append(conditions, "parcel_id = ?")
		args = append(args, query.ParcelID().Bytes())
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parcel_id,
			tracking_id,
			status,
			location,
			notes,
			lat,
			lng,
			created_at
		FROM tracking_updates
		`+where+`
		ORDER BY created_at DESC
	`, args...).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list tracking", err)
	}
	defer rows.Close()

	updates := make([]TrackingView, 0)
	for rows.Next() {
		var (
			view     TrackingView
			parcelID uuid.NullUUID
			lat, lng sql.NullFloat64
		)
		if err = rows.Scan(
			&view.ID,
			&parcelID,
			&view.TrackingID,
			&view.Status,
			&view.Location,
			&view.Notes,
			&lat,
			&lng,
			&view.CreatedAt,
		); err != nil {
			return nil, errs.NewStoreUnavailableError("list tracking", err)
		}

		if parcelID.Valid {
			view.ParcelID = &parcelID.UUID
		}
		if lat.Valid && lng.Valid {
			view.Lat = &lat.Float64
			view.Lng = &lng.Float64
		}
		updates = append(updates, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreUnavailableError("list tracking", err)
	}
	return updates, nil
}
