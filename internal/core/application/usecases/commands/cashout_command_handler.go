package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// ErrNothingToSettle is the benign outcome of a cashout that found, or won,
// no parcel. Callers treat it as a no-op, not as a failure.
var ErrNothingToSettle = errors.New("nothing to settle")

// CashoutResult describes the batch this call settled.
type CashoutResult struct {
	BatchID      kernel.UUID
	ParcelIDs    []kernel.UUID
	TotalEarning kernel.Money
	CashedOutAt  time.Time
}

func (r CashoutResult) ParcelCount() int {
	return len(r.ParcelIDs)
}

// CashoutCommandHandler batches a rider's settleable parcels into one payout.
//
// Steps:
//  1. select the rider's delivered parcels that are not cashed out
//  2. capture their ids
//  3. flip exactly those ids in one statement conditioned on
//     payment_status <> cashed_out, stamping a fresh batch id
//  4. append one ledger record listing only the ids step 3 flipped
//
// Two concurrent calls may select the same parcel; only one of them flips it
// and only that one reports it. When step 4 fails the parcels are already
// settled; errs.PartialFailureError carries the batch id and the
// reconciliation job rebuilds the record from the stamped parcels.
type CashoutCommandHandler struct {
	parcels  ports.ParcelRepository
	ledger   ports.CashoutLedger
	notifier notifier
	now      func() time.Time
}

func NewCashoutCommandHandler(
	parcels ports.ParcelRepository,
	ledger ports.CashoutLedger,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CashoutCommandHandler {
	return CashoutCommandHandler{
		parcels:  parcels,
		ledger:   ledger,
		notifier: newNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (h CashoutCommandHandler) Handle(ctx context.Context, cmd CashoutCommand) (CashoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CashoutResult{}, err
	}

	selected, err := h.parcels.FindSettleable(ctx, cmd.RiderEmail())
	if err != nil {
		return CashoutResult{}, err
	}
	if len(selected) == 0 {
		return CashoutResult{}, ErrNothingToSettle
	}

	byID := make(map[kernel.UUID]*parcel.Parcel, len(selected))
	ids := make([]kernel.UUID, 0, len(selected))
	for _, p := range selected {
		byID[p.ID()] = p
		ids = append(ids, p.ID())
	}

	batchID := kernel.NewUUID()
	now := h.now().UTC()

	flipped, err := h.parcels.MarkCashedOut(ctx, ids, batchID, now)
	if err != nil {
		return CashoutResult{}, err
	}
	if len(flipped) == 0 {
		return CashoutResult{}, ErrNothingToSettle
	}

	total := kernel.ZeroMoney()
	for _, id := range flipped {
		if p, ok := byID[id]; ok {
			total = total.Add(p.EarningOrZero())
		}
	}

	result := CashoutResult{
		BatchID:      batchID,
		ParcelIDs:    flipped,
		TotalEarning: total,
		CashedOutAt:  now,
	}

	record, err := cashout.NewRecord(batchID, cmd.RiderEmail(), flipped, total, now)
	if err == nil {
		_, err = h.ledger.Add(ctx, record)
	}
	if err != nil {
		return result, errs.NewPartialFailureError(
			"cashout", StepLedgerAppend, []string{StepParcelUpdate},
			append([]string{batchID.String()}, kernel.UUIDStrings(flipped)...), err,
		)
	}

	h.notifier.notify(ctx, ports.Event{
		Type:       ports.EventRiderCashedOut,
		Key:        cmd.RiderEmail().String(),
		OccurredAt: now,
		Payload: map[string]any{
			"batchId":      batchID.String(),
			"riderEmail":   cmd.RiderEmail().String(),
			"parcelIds":    kernel.UUIDStrings(flipped),
			"parcelCount":  len(flipped),
			"totalEarning": total.String(),
		},
	})

	return result, nil
}
