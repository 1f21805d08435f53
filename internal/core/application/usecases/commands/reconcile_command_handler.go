package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// ReconcileResult counts the repairs made by one pass.
type ReconcileResult struct {
	RidersReleased  int
	RidersResumed   int
	PaymentsApplied int
	LedgerRebuilt   int
	ItemsFailed     int
}

// ReconcileCommandHandler completes multi-step operations that stopped
// after their first write:
//   - riders left in_delivery although none of their parcels is in transit
//   - active riders left idle although one of their parcels is in transit
//   - payment history entries whose parcel is still unpaid
//   - cashout batches stamped on parcels but missing from the ledger
//
// Each repair is the same conditional write the original command would
// have made, so running the pass concurrently with live traffic is safe.
// A failing item is logged and counted; the pass continues.
type ReconcileCommandHandler struct {
	store  ports.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewReconcileCommandHandler(store ports.Store, logger *slog.Logger) ReconcileCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReconcileCommandHandler{
		store:  store,
		logger: logger.With("component", "reconcile"),
		now:    time.Now,
	}
}

func (h ReconcileCommandHandler) Handle(ctx context.Context, cmd ReconcileCommand) (ReconcileResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	err := errors.Join(
		h.releaseRiders(ctx, &result),
		h.resumeRiders(ctx, &result),
		h.applyPayments(ctx, cmd.Since(), &result),
		h.rebuildLedger(ctx, cmd.Since(), &result),
	)
	return result, err
}

func (h ReconcileCommandHandler) releaseRiders(ctx context.Context, result *ReconcileResult) error {
	riders, err := h.store.Riders().FindInDelivery(ctx)
	if err != nil {
		return err
	}

	now := h.now().UTC()
	for _, r := range riders {
		released, err := releaseIdleRider(ctx, h.store.Parcels(), h.store.Riders(), r.ID(), now)
		if err != nil {
			h.itemFailed(ctx, result, "rider release", r.ID().String(), err)
			continue
		}
		if released {
			result.RidersReleased++
		}
	}
	return nil
}

func (h ReconcileCommandHandler) resumeRiders(ctx context.Context, result *ReconcileResult) error {
	riders, err := h.store.Riders().FindIdle(ctx)
	if err != nil {
		return err
	}

	now := h.now().UTC()
	for _, candidate := range riders {
		_, resumed, err := updateRider(ctx, h.store.Riders(), candidate.ID(), func(r *rider.Rider) (bool, error) {
			if r.Status() != rider.Active || r.WorkStatus() == rider.InDelivery {
				return false, nil
			}
			inTransit, err := h.store.Parcels().CountInTransitForRider(ctx, r.ID())
			if err != nil || inTransit == 0 {
				return false, err
			}
			return r.StartDelivery(now)
		})
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			continue
		case err != nil:
			h.itemFailed(ctx, result, "rider resume", candidate.ID().String(), err)
		case resumed:
			result.RidersResumed++
		}
	}
	return nil
}

func (h ReconcileCommandHandler) applyPayments(ctx context.Context, since time.Time, result *ReconcileResult) error {
	entries, err := h.store.Payments().ListSince(ctx, since)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		_, changed, err := updateParcel(ctx, h.store.Parcels(), entry.ParcelID(), func(p *parcel.Parcel) (bool, error) {
			return p.MarkPaid(entry.TransactionID(), entry.CreatedAt())
		})
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			continue
		case err != nil:
			h.itemFailed(ctx, result, "payment apply", entry.TransactionID(), err)
		case changed:
			result.PaymentsApplied++
		}
	}
	return nil
}

func (h ReconcileCommandHandler) rebuildLedger(ctx context.Context, since time.Time, result *ReconcileResult) error {
	batchIDs, err := h.store.Parcels().ListCashoutBatchIDs(ctx, since)
	if err != nil {
		return err
	}

	for _, batchID := range batchIDs {
		rebuilt, err := h.rebuildBatch(ctx, batchID)
		if err != nil {
			h.itemFailed(ctx, result, "ledger rebuild", batchID.String(), err)
			continue
		}
		if rebuilt {
			result.LedgerRebuilt++
		}
	}
	return nil
}

func (h ReconcileCommandHandler) rebuildBatch(ctx context.Context, batchID kernel.UUID) (bool, error) {
	exists, err := h.store.Cashouts().Exists(ctx, batchID)
	if err != nil || exists {
		return false, err
	}

	parcels, err := h.store.Parcels().FindByCashoutBatch(ctx, batchID)
	if err != nil || len(parcels) == 0 {
		return false, err
	}

	ids := make([]kernel.UUID, 0, len(parcels))
	total := kernel.ZeroMoney()
	cashedOutAt := h.now().UTC()
	for _, p := range parcels {
		ids = append(ids, p.ID())
		total = total.Add(p.EarningOrZero())
		if p.CashedOutAt() != nil {
			cashedOutAt = *p.CashedOutAt()
		}
	}

	record, err := cashout.NewRecord(batchID, parcels[0].AssignedRiderEmail(), ids, total, cashedOutAt)
	if err != nil {
		return false, err
	}
	return h.store.Cashouts().Add(ctx, record)
}

func (h ReconcileCommandHandler) itemFailed(ctx context.Context, result *ReconcileResult, repair, id string, err error) {
	result.ItemsFailed++
	h.logger.ErrorContext(ctx, "reconciliation item failed", "repair", repair, "id", id, "error", err)
}
