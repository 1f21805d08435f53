// Package commands contains the operations that change lifecycle state.
//
// Every command is built by a constructor that parses and validates raw input,
// so validation errors surface before any write. Handlers that touch more
// than one collection write in a fixed order and report the failing step with
// errs.PartialFailureError; re-running a command after such a failure is safe.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// maxWriteAttempts bounds the re-read loop of idempotent aggregate updates.
const maxWriteAttempts = 3

// Step names reported in errs.PartialFailureError.
const (
	StepParcelUpdate         = "parcel_update"
	StepRiderUpdate          = "rider_update"
	StepRiderRelease         = "rider_release"
	StepPreviousRiderRelease = "previous_rider_release"
	StepHistoryInsert        = "history_insert"
	StepLedgerAppend         = "ledger_append"
	StepRoleUpdate           = "role_update"
)

func requiredString(param, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	return s, nil
}

func requiredUUID(param, s string) (kernel.UUID, error) {
	s, err := requiredString(param, s)
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(s)
}

func requiredEmail(param, s string) (kernel.Email, error) {
	s, err := requiredString(param, s)
	if err != nil {
		return kernel.Email{}, err
	}
	return kernel.NewEmail(s)
}

// updateParcel re-reads, mutates and conditionally writes a parcel until the
// write wins or the attempts run out. mutate must be idempotent.
func updateParcel(
	ctx context.Context,
	repo ports.ParcelRepository,
	id kernel.UUID,
	mutate func(p *parcel.Parcel) (bool, error),
) (*parcel.Parcel, bool, error) {
	var lastErr error
	for range maxWriteAttempts {
		p, err := repo.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}

		changed, err := mutate(p)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return p, false, nil
		}

		lastErr = repo.Update(ctx, p)
		if lastErr == nil {
			return p, true, nil
		}
		if !errors.Is(lastErr, errs.ErrVersionIsInvalid) {
			return nil, false, lastErr
		}
	}
	return nil, false, lastErr
}

// updateRider is updateParcel for riders. A decision made on a stale read is
// never written; mutate sees the rider as currently stored.
func updateRider(
	ctx context.Context,
	repo ports.RiderRepository,
	id kernel.UUID,
	mutate func(r *rider.Rider) (bool, error),
) (*rider.Rider, bool, error) {
	var lastErr error
	for range maxWriteAttempts {
		r, err := repo.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}

		changed, err := mutate(r)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return r, false, nil
		}

		lastErr = repo.Update(ctx, r)
		if lastErr == nil {
			return r, true, nil
		}
		if !errors.Is(lastErr, errs.ErrVersionIsInvalid) {
			return nil, false, lastErr
		}
	}
	return nil, false, lastErr
}

// notifier publishes events after the state they describe was written.
// Delivery failures are logged and do not change the command's result.
type notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher ports.EventPublisher, logger *slog.Logger) notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return notifier{publisher: publisher, logger: logger.With("component", "commands")}
}

func (n notifier) notify(ctx context.Context, events ...ports.Event) {
	if n.publisher == nil || len(events) == 0 {
		return
	}
	if err := n.publisher.Publish(ctx, events...); err != nil {
		n.logger.WarnContext(ctx, "failed to publish events",
			"type", events[0].Type,
			"key", events[0].Key,
			"count", len(events),
			"error", err,
		)
	}
}

func parcelEvent(eventType string, p *parcel.Parcel) ports.Event {
	payload := map[string]any{
		"parcelId":       p.ID().String(),
		"trackingId":     p.TrackingID(),
		"status":         p.Status().String(),
		"paymentStatus":  p.PaymentStatus().String(),
		"deliveryStatus": p.DeliveryStatus().String(),
	}
	if p.HasRider() {
		payload["riderId"] = p.AssignedRiderID().String()
		payload["riderEmail"] = p.AssignedRiderEmail().String()
	}
	if p.Earning() != nil {
		payload["earningAmount"] = p.Earning().String()
	}
	return ports.Event{
		Type:       eventType,
		Key:        p.ID().String(),
		OccurredAt: p.UpdatedAt(),
		Payload:    payload,
	}
}
