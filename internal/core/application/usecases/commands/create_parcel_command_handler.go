package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// CreateParcelResult identifies the registered parcel.
type CreateParcelResult struct {
	ParcelID   kernel.UUID
	TrackingID string
}

// CreateParcelCommandHandler registers parcels in the pending, unpaid,
// not_collected state.
type CreateParcelCommandHandler struct {
	parcels  ports.ParcelRepository
	notifier notifier
	now      func() time.Time
}

func NewCreateParcelCommandHandler(
	parcels ports.ParcelRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		parcels:  parcels,
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

// Handle builds the aggregate and stores it.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (CreateParcelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateParcelResult{}, err
	}

	p, err := parcel.NewParcel(parcel.Params{
		ID:             cmd.ParcelID(),
		TrackingID:     cmd.TrackingID(),
		Title:          cmd.Title(),
		ParcelType:     cmd.ParcelType(),
		CreatedBy:      cmd.CreatedBy(),
		SenderName:     cmd.SenderName(),
		SenderRegion:   cmd.SenderRegion(),
		ReceiverName:   cmd.ReceiverName(),
		ReceiverRegion: cmd.ReceiverRegion(),
		Cost:           cmd.Cost(),
	}, h.now().UTC())
	if err != nil {
		return CreateParcelResult{}, err
	}

	if err = h.parcels.Add(ctx, p); err != nil {
		return CreateParcelResult{}, err
	}

	h.notifier.notify(ctx, parcelEvent(ports.EventParcelCreated, p))

	return CreateParcelResult{ParcelID: p.ID(), TrackingID: p.TrackingID()}, nil
}
