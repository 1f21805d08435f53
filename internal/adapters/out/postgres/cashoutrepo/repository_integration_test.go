package cashoutrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/postgres/cashoutrepo"
	"parcelflow/internal/adapters/out/postgres/pgtest"
	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type CashoutLedgerIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	ledger   *cashoutrepo.GormCashoutLedger
}

func (suite *CashoutLedgerIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &cashoutrepo.CashoutDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CashoutLedgerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("cashouts"))
	suite.ledger = cashoutrepo.NewGormCashoutLedger(suite.database.DB)
}

func (suite *CashoutLedgerIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *CashoutLedgerIntegrationTestSuite) TestAdd_OncePerBatch() {
	ctx := context.Background()
	email, err := kernel.NewEmail("rider@example.com")
	suite.Require().NoError(err)
	total, err := kernel.MoneyFromString("110")
	suite.Require().NoError(err)
	parcels := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	record, err := cashout.NewRecord(kernel.NewUUID(), email, parcels, total, time.Now().UTC())
	suite.Require().NoError(err)

	exists, err := suite.ledger.Exists(ctx, record.ID())
	suite.Require().NoError(err)
	suite.False(exists)

	inserted, err := suite.ledger.Add(ctx, record)
	suite.Require().NoError(err)
	suite.True(inserted)

	inserted, err = suite.ledger.Add(ctx, record)
	suite.Require().NoError(err)
	suite.False(inserted)

	exists, err = suite.ledger.Exists(ctx, record.ID())
	suite.Require().NoError(err)
	suite.True(exists)

	var stored cashoutrepo.CashoutDTO
	suite.Require().NoError(suite.database.DB.First(&stored, "id = ?", record.ID().Bytes()).Error)
	suite.Equal(2, stored.ParcelCount)
	suite.ElementsMatch(kernel.UUIDStrings(parcels), []string(stored.ParcelIDs))
	suite.Equal("110", stored.TotalEarning.String())
}

func TestCashoutLedgerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CashoutLedgerIntegrationTestSuite))
}
