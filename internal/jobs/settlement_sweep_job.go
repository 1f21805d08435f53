package jobs

import (
	"context"
	"errors"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type unsettledRidersFinder interface {
	Handle(ctx context.Context, query queries.ListRidersWithUnsettledQuery) ([]string, error)
}

type cashoutHandler interface {
	Handle(ctx context.Context, cmd commands.CashoutCommand) (commands.CashoutResult, error)
}

// SweepReport summarizes one settlement sweep.
type SweepReport struct {
	Riders  int
	Settled int
	Failed  int
}

// SettlementSweepJob settles every rider that has delivered parcels waiting
// for cashout.
type SettlementSweepJob struct {
	finder   unsettledRidersFinder
	cashout  cashoutHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSettlementSweepJob creates the sweep. schedule is a six-field cron
// expression (seconds first).
func NewSettlementSweepJob(
	finder unsettledRidersFinder,
	cashout cashoutHandler,
	schedule string,
	logger *slog.Logger,
) *SettlementSweepJob {
	return &SettlementSweepJob{
		finder:   finder,
		cashout:  cashout,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "settlement_sweep_job"),
	}
}

// Run performs one sweep. A rider whose parcels were settled concurrently
// yields commands.ErrNothingToSettle, which is not a failure.
func (j *SettlementSweepJob) Run(ctx context.Context) (SweepReport, error) {
	emails, err := j.finder.Handle(ctx, queries.NewListRidersWithUnsettledQuery())
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Riders: len(emails)}
	for _, email := range emails {
		cmd, cmdErr := commands.NewCashoutCommand(email)
		if cmdErr != nil {
			report.Failed++
			j.logger.WarnContext(ctx, "Skipping rider with malformed email", "email", email, "error", cmdErr)
			continue
		}

		result, cashoutErr := j.cashout.Handle(ctx, cmd)
		switch {
		case errors.Is(cashoutErr, commands.ErrNothingToSettle):
		case cashoutErr != nil:
			report.Failed++
			j.logger.ErrorContext(ctx, "Cashout failed", "email", email, "error", cashoutErr)
		default:
			report.Settled += result.ParcelCount()
		}
	}
	return report, nil
}

// Start schedules the sweep.
func (j *SettlementSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		report, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Settlement sweep failed", "error", err)
			return
		}
		if report.Riders > 0 {
			j.logger.InfoContext(ctx, "Settlement sweep finished",
				"riders", report.Riders, "settled", report.Settled, "failed", report.Failed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep and waits for a running one to finish.
func (j *SettlementSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settlement sweep job stopped")
}
