package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrAddTrackingUpdateCommandIsNotConstructed = errors.New(
	"AddTrackingUpdateCommand must be created via NewAddTrackingUpdateCommand constructor",
)

type AddTrackingUpdateInput struct {
	ParcelID   string
	TrackingID string
	Status     string
	Location   string
	Notes      string
	Lat        *float64
	Lng        *float64
}

// AddTrackingUpdateCommand appends a sender-visible tracking entry. It does
// not touch parcel lifecycle state.
type AddTrackingUpdateCommand struct {
	update tracking.Update
	guard  guard.ConstructorGuard
}

func NewAddTrackingUpdateCommand(input AddTrackingUpdateInput) (AddTrackingUpdateCommand, error) {
	var (
		parcelID *kernel.UUID
		idErr    error
	)
	if s := strings.TrimSpace(input.ParcelID); s != "" {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			idErr = err
		} else {
			parcelID = &id
		}
	}

	var (
		coords    *tracking.Coordinates
		coordsErr error
	)
	switch {
	case input.Lat != nil && input.Lng != nil:
		coords = &tracking.Coordinates{Lat: *input.Lat, Lng: *input.Lng}
		coordsErr = validateCoordinates(*coords)
	case input.Lat != nil || input.Lng != nil:
		coordsErr = errs.NewValueIsRequiredError("lat and lng")
	}

	update, updateErr := tracking.NewUpdate(
		kernel.NewUUID(), parcelID,
		input.TrackingID, input.Status, input.Location, input.Notes,
		coords, time.Now().UTC(),
	)

	if err := errors.Join(idErr, coordsErr, updateErr); err != nil {
		return AddTrackingUpdateCommand{}, err
	}

	return AddTrackingUpdateCommand{
		update: update,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func validateCoordinates(c tracking.Coordinates) error {
	if c.Lat < -90 || c.Lat > 90 {
		return errs.NewValueIsOutOfRangeError("lat", c.Lat, -90, 90)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return errs.NewValueIsOutOfRangeError("lng", c.Lng, -180, 180)
	}
	return nil
}

func (c AddTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrAddTrackingUpdateCommandIsNotConstructed)
}

func (c AddTrackingUpdateCommand) Update() tracking.Update {
	return c.update
}

type AddTrackingUpdateCommandHandler struct {
	parcels ports.ParcelRepository
	log     ports.TrackingLog
}

func NewAddTrackingUpdateCommandHandler(parcels ports.ParcelRepository, log ports.TrackingLog) AddTrackingUpdateCommandHandler {
	return AddTrackingUpdateCommandHandler{parcels: parcels, log: log}
}

func (h AddTrackingUpdateCommandHandler) Handle(ctx context.Context, cmd AddTrackingUpdateCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	update := cmd.Update()
	if update.ParcelID() != nil {
		if _, err := h.parcels.Get(ctx, *update.ParcelID()); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err := h.log.Append(ctx, update); err != nil {
		return kernel.UUID{}, err
	}
	return update.ID(), nil
}
