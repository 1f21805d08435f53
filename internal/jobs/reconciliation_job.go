package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type reconcileHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileCommand) (commands.ReconcileResult, error)
}

// ReconciliationJob completes multi-step writes that stopped half way.
// Each run looks back over a fixed window.
type ReconciliationJob struct {
	handler  reconcileHandler
	schedule string
	lookback time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewReconciliationJob(
	handler reconcileHandler,
	schedule string,
	lookback time.Duration,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		lookback: lookback,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Run reconciles everything recorded within the lookback window.
func (j *ReconciliationJob) Run(ctx context.Context) (commands.ReconcileResult, error) {
	cmd, err := commands.NewReconcileCommand(j.now().UTC().Add(-j.lookback))
	if err != nil {
		return commands.ReconcileResult{}, err
	}
	return j.handler.Handle(ctx, cmd)
}

// Start schedules reconciliation.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		result, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation failed", "error", err)
			return
		}
		repairs := result.RidersReleased + result.RidersResumed + result.PaymentsApplied + result.LedgerRebuilt
		if repairs+result.ItemsFailed > 0 {
			j.logger.InfoContext(ctx, "Reconciliation finished",
				"riders_released", result.RidersReleased,
				"riders_resumed", result.RidersResumed,
				"payments_applied", result.PaymentsApplied,
				"ledger_rebuilt", result.LedgerRebuilt,
				"items_failed", result.ItemsFailed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops reconciliation and waits for a running pass to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
