// Package jobs provides scheduled background tasks for parcel settlement.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first) taken from configuration.
//
// # Available Jobs
//
// 1. SettlementSweepJob - cashes out every rider with delivered, unsettled parcels
// 2. ReconciliationJob - finishes multi-step writes that stopped after their first step
//
// # Usage
//
//	sweep := jobs.NewSettlementSweepJob(unsettledHandler, cashoutHandler, "0 0 2 * * *", logger)
//	reconciliation := jobs.NewReconciliationJob(reconcileHandler, "0 * * * * *", 24*time.Hour, logger)
//	jobManager := jobs.NewJobManager(sweep, reconciliation)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The sweep ignores commands.ErrNothingToSettle; a concurrent cashout already won
// - A failed cashout for one rider does not stop the sweep for the others
// - Failed job starts will stop any already running jobs
package jobs
