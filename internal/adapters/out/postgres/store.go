// Package postgres wires the GORM repositories into a ports.Store.
//
// Each repository call runs as its own statement on the shared connection
// pool. No transaction spans repositories: multi-step operations in the
// lifecycle core rely on conditional writes (version compare-and-set, unique
// transaction ids, the conditional cashout flip) instead.
//
// Usage:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(db); err != nil {
//	    return err
//	}
//	store := postgres.NewGormStore(db)
//	p, err := store.Parcels().Get(ctx, id)
package postgres

import (
	"parcelflow/internal/adapters/out/postgres/cashoutrepo"
	"parcelflow/internal/adapters/out/postgres/parcelrepo"
	"parcelflow/internal/adapters/out/postgres/paymentrepo"
	"parcelflow/internal/adapters/out/postgres/riderrepo"
	"parcelflow/internal/adapters/out/postgres/trackingrepo"
	"parcelflow/internal/adapters/out/postgres/userrepo"
	"parcelflow/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table the store owns, in migration order.
func Models() []any {
	return []any{
		&parcelrepo.ParcelDTO{},
		&riderrepo.RiderDTO{},
		&paymentrepo.PaymentDTO{},
		&cashoutrepo.CashoutDTO{},
		&userrepo.UserDTO{},
		&trackingrepo.TrackingUpdateDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// GormStore implements ports.Store on one *gorm.DB. It is safe for
// concurrent use; repositories are stateless views over the pool.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Parcels() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(s.db)
}

func (s *GormStore) Riders() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(s.db)
}

func (s *GormStore) Payments() ports.PaymentHistoryRepository {
	return paymentrepo.NewGormPaymentHistory(s.db)
}

func (s *GormStore) Cashouts() ports.CashoutLedger {
	return cashoutrepo.NewGormCashoutLedger(s.db)
}

func (s *GormStore) Users() ports.UserDirectory {
	return userrepo.NewGormUserDirectory(s.db)
}

func (s *GormStore) Tracking() ports.TrackingLog {
	return trackingrepo.NewGormTrackingLog(s.db)
}
