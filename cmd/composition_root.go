package cmd

import (
	"log/slog"

	httpin "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/adapters/out/jwtauth"
	"parcelflow/internal/adapters/out/kafka"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config    Config
	gormDB    *gorm.DB
	store     *postgres.GormStore
	publisher ports.EventPublisher
	closers   []func() error
	logger    *slog.Logger
}

// NewCompositionRoot wires the adapters around db. Events are published only
// when a Kafka broker is configured.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config: config,
		gormDB: gormDB,
		store:  postgres.NewGormStore(gormDB),
		logger: logger,
	}

	if config.KafkaHost != "" {
		publisher := kafka.NewPublisher(config.KafkaHost, config.KafkaParcelEventsTopic)
		root.publisher = publisher
		root.closers = append(root.closers, publisher.Close)
	}
	return root
}

// Close releases the adapters that hold connections.
func (c *CompositionRoot) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Warn("failed to close adapter", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateAuthorizer() (*jwtauth.Authorizer, error) {
	return jwtauth.NewAuthorizer(c.config.JWTSecret, c.config.JWTIssuer, c.store.Users())
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.store.Parcels(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(
		c.store.Parcels(), c.store.Riders(), services.NewEarningCalculator(), c.publisher, c.logger,
	)
}

func (c *CompositionRoot) CreateMarkCollectedCommandHandler() commands.MarkCollectedCommandHandler {
	return commands.NewMarkCollectedCommandHandler(c.store.Parcels(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.store.Parcels(), c.store.Riders(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.store.Parcels(), c.store.Payments(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCashoutCommandHandler() commands.CashoutCommandHandler {
	return commands.NewCashoutCommandHandler(c.store.Parcels(), c.store.Cashouts(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReconcileCommandHandler() commands.ReconcileCommandHandler {
	return commands.NewReconcileCommandHandler(c.store, c.logger)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterUser:  commands.NewRegisterUserCommandHandler(c.store.Users()),
		SetUserRole:   commands.NewSetUserRoleCommandHandler(c.store.Users()),
		CreateParcel:  c.CreateCreateParcelCommandHandler(),
		DeleteParcel:  commands.NewDeleteParcelCommandHandler(c.store.Parcels()),
		AdvanceStatus: c.CreateAdvanceStatusCommandHandler(),
		MarkCollected: c.CreateMarkCollectedCommandHandler(),
		AssignRider:   c.CreateAssignRiderCommandHandler(),
		RecordPayment: c.CreateRecordPaymentCommandHandler(),
		AddTracking:   commands.NewAddTrackingUpdateCommandHandler(c.store.Parcels(), c.store.Tracking()),
		ApplyRider:    commands.NewApplyRiderCommandHandler(c.store.Riders()),
		ReviewRider:   commands.NewReviewRiderCommandHandler(c.store.Riders(), c.store.Users()),
		Cashout:       c.CreateCashoutCommandHandler(),

		GetParcel:         queries.NewGetParcelQueryHandler(c.gormDB),
		ListParcels:       queries.NewListParcelsQueryHandler(c.gormDB),
		PaymentHistory:    queries.NewListPaymentHistoryQueryHandler(c.gormDB),
		ListCashouts:      queries.NewListCashoutsQueryHandler(c.gormDB),
		ListTracking:      queries.NewListTrackingQueryHandler(c.gormDB),
		GetUserRole:       queries.NewGetUserRoleQueryHandler(c.gormDB),
		SearchUsers:       queries.NewSearchUsersQueryHandler(c.gormDB),
		ListRiders:        queries.NewListRidersQueryHandler(c.gormDB),
		PendingDeliveries: queries.NewPendingDeliveriesQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewSettlementSweepJob(
		queries.NewListRidersWithUnsettledQueryHandler(c.gormDB),
		c.CreateCashoutCommandHandler(),
		c.config.SettlementSchedule,
		c.logger,
	)
	reconciliation := jobs.NewReconciliationJob(
		c.CreateReconcileCommandHandler(),
		c.config.ReconciliationSchedule,
		c.config.ReconciliationLookback,
		c.logger,
	)
	return jobs.NewJobManager(sweep, reconciliation)
}
