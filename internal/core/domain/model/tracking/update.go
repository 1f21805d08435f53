// Package tracking holds the append-only log of tracking updates shown to
// senders. Entries are never edited and carry no lifecycle semantics.
package tracking

import (
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

var (
	ErrReferenceIsRequired = errs.NewValueIsRequiredError("parcelID or trackingID")
	ErrStatusIsRequired    = errs.NewValueIsRequiredError("status")
)

// Coordinates is an optional geographic fix reported with an update.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Update is one entry of the tracking log.
type Update struct {
	id          kernel.UUID
	parcelID    *kernel.UUID
	trackingID  string
	status      string
	location    string
	notes       string
	coordinates *Coordinates
	createdAt   time.Time
}

// NewUpdate requires a status and at least one of parcelID or trackingID.
func NewUpdate(
	id kernel.UUID,
	parcelID *kernel.UUID,
	trackingID, status, location, notes string,
	coordinates *Coordinates,
	createdAt time.Time,
) (Update, error) {
	trackingID = strings.TrimSpace(trackingID)
	status = strings.TrimSpace(status)

	var refErr, statusErr error
	if parcelID == nil && trackingID == "" {
		refErr = ErrReferenceIsRequired
	}
	if status == "" {
		statusErr = ErrStatusIsRequired
	}
	if err := errors.Join(id.Validate(), refErr, statusErr); err != nil {
		return Update{}, err
	}

	return Update{
		id:          id,
		parcelID:    parcelID,
		trackingID:  trackingID,
		status:      status,
		location:    strings.TrimSpace(location),
		notes:       strings.TrimSpace(notes),
		coordinates: coordinates,
		createdAt:   createdAt,
	}, nil
}

func (u Update) ID() kernel.UUID {
	return u.id
}

func (u Update) ParcelID() *kernel.UUID {
	return u.parcelID
}

func (u Update) TrackingID() string {
	return u.trackingID
}

func (u Update) Status() string {
	return u.status
}

func (u Update) Location() string {
	return u.location
}

func (u Update) Notes() string {
	return u.notes
}

func (u Update) Coordinates() *Coordinates {
	return u.coordinates
}

func (u Update) CreatedAt() time.Time {
	return u.createdAt
}
