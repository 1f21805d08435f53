package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/payment"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// PaymentResult reports the two writes of a payment confirmation.
// HistorySaved is true when the history entry exists after the call, whether
// this call inserted it or an earlier one did.
type PaymentResult struct {
	HistorySaved  bool
	ParcelUpdated bool
}

// RecordPaymentCommandHandler records a payment in the history ledger and
// marks the parcel paid.
//
// The history entry is written first and is the durable source of truth:
// when the parcel write fails afterwards the handler returns
// errs.PartialFailureError with step parcel_update and the reconciliation job
// re-applies the entry later. Replays are safe because the entry is unique by
// transaction id and the parcel never leaves paid or cashed_out. A transaction
// id already recorded for another parcel is rejected before the parcel is
// touched.
type RecordPaymentCommandHandler struct {
	parcels  ports.ParcelRepository
	payments ports.PaymentHistoryRepository
	notifier notifier
	now      func() time.Time
}

func NewRecordPaymentCommandHandler(
	parcels ports.ParcelRepository,
	payments ports.PaymentHistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		parcels:  parcels,
		payments: payments,
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentResult{}, err
	}

	// The parcel must exist before anything is written.
	if _, err := h.parcels.Get(ctx, cmd.ParcelID()); err != nil {
		return PaymentResult{}, err
	}

	now := h.now().UTC()
	entry, err := payment.NewEntry(kernel.NewUUID(), cmd.ParcelID(), cmd.TransactionID(), cmd.Amount(), cmd.Email(), now)
	if err != nil {
		return PaymentResult{}, err
	}
	inserted, err := h.payments.Add(ctx, entry)
	if err != nil {
		return PaymentResult{}, err
	}
	if !inserted {
		// A replayed transaction id must belong to this parcel.
		existing, getErr := h.payments.GetByTransactionID(ctx, cmd.TransactionID())
		if getErr != nil {
			return PaymentResult{}, getErr
		}
		if !existing.ParcelID().IsEqual(cmd.ParcelID()) {
			return PaymentResult{}, errs.NewValueIsInvalidError("transactionID")
		}
	}

	result := PaymentResult{HistorySaved: true}

	p, changed, err := updateParcel(ctx, h.parcels, cmd.ParcelID(), func(p *parcel.Parcel) (bool, error) {
		return p.MarkPaid(cmd.TransactionID(), now)
	})
	if err != nil {
		return result, partialOrPlain(
			"record_payment", StepParcelUpdate, []string{StepHistoryInsert},
			[]string{cmd.ParcelID().String(), cmd.TransactionID()}, err,
		)
	}
	result.ParcelUpdated = changed

	if changed {
		h.notifier.notify(ctx, parcelEvent(ports.EventParcelPaid, p))
	}

	return result, nil
}
