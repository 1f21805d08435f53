package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/adapters/out/postgres/pgtest"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/payment"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	store    *postgres_adapter.GormStore
	now      time.Time
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(database.DB))
	suite.database = database
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(
		"parcels", "riders", "payment_history", "cashouts", "users", "tracking_updates",
	))
	suite.store = postgres_adapter.NewGormStore(suite.database.DB)
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetParcel() {
	ctx := context.Background()
	p := suite.addParcel("sender@example.com", suite.now)

	query, err := queries.NewGetParcelQuery(p.ID().String())
	suite.Require().NoError(err)
	view, err := queries.NewGetParcelQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(p.ID().Bytes(), view.ID)
	suite.Equal(p.TrackingID(), view.TrackingID)
	suite.Equal("pending", view.Status)
	suite.Equal("unpaid", view.PaymentStatus)
	suite.Equal("not_collected", view.DeliveryStatus)
	suite.Equal("100", view.Cost.String())
	suite.False(view.EarningAmount.Valid)

	missing, err := queries.NewGetParcelQuery(kernel.NewUUID().String())
	suite.Require().NoError(err)
	_, err = queries.NewGetParcelQueryHandler(suite.database.DB).Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListParcels_FiltersNewestFirst() {
	older := suite.addParcel("sender@example.com", suite.now.Add(-time.Hour))
	newer := suite.addParcel("sender@example.com", suite.now)
	suite.addParcel("other@example.com", suite.now)

	query, err := queries.NewListParcelsQuery(queries.ParcelFilter{CreatedBy: "Sender@example.com"})
	suite.Require().NoError(err)
	views, err := queries.NewListParcelsQueryHandler(suite.database.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(newer.ID().Bytes(), views[0].ID)
	suite.Equal(older.ID().Bytes(), views[1].ID)

	query, err = queries.NewListParcelsQuery(queries.ParcelFilter{Status: "delivered"})
	suite.Require().NoError(err)
	views, err = queries.NewListParcelsQueryHandler(suite.database.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueryHandlersIntegrationTestSuite) TestPaymentHistoryAndCashouts() {
	ctx := context.Background()
	sender := suite.email("sender@example.com")
	riderEmail := suite.email("rider@example.com")
	amount, err := kernel.MoneyFromString("100")
	suite.Require().NoError(err)

	for i, tx := range []string{"tx-1", "tx-2"} {
		entry, entryErr := payment.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), tx, amount, sender, suite.now.Add(time.Duration(i)*time.Minute),
		)
		suite.Require().NoError(entryErr)
		_, err = suite.store.Payments().Add(ctx, entry)
		suite.Require().NoError(err)
	}

	historyQuery, err := queries.NewListPaymentHistoryQuery("sender@example.com")
	suite.Require().NoError(err)
	history, err := queries.NewListPaymentHistoryQueryHandler(suite.database.DB).Handle(ctx, historyQuery)
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal("tx-2", history[0].TransactionID)

	record, err := cashout.NewRecord(kernel.NewUUID(), riderEmail, []kernel.UUID{kernel.NewUUID()}, amount, suite.now)
	suite.Require().NoError(err)
	_, err = suite.store.Cashouts().Add(ctx, record)
	suite.Require().NoError(err)

	cashoutsQuery, err := queries.NewListCashoutsQuery("rider@example.com")
	suite.Require().NoError(err)
	cashouts, err := queries.NewListCashoutsQueryHandler(suite.database.DB).Handle(ctx, cashoutsQuery)
	suite.Require().NoError(err)
	suite.Require().Len(cashouts, 1)
	suite.Equal(1, cashouts[0].ParcelCount)
	suite.Len(cashouts[0].ParcelIDs, 1)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListTracking() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	first, err := tracking.NewUpdate(kernel.NewUUID(), &parcelID, "PCL-1", "picked up", "", "", nil, suite.now)
	suite.Require().NoError(err)
	second, err := tracking.NewUpdate(kernel.NewUUID(), nil, "PCL-1", "at hub", "Mirpur", "",
		&tracking.Coordinates{Lat: 23.8, Lng: 90.4}, suite.now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Tracking().Append(ctx, first))
	suite.Require().NoError(suite.store.Tracking().Append(ctx, second))

	query, err := queries.NewListTrackingQuery("PCL-1", "")
	suite.Require().NoError(err)
	updates, err := queries.NewListTrackingQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(updates, 2)
	suite.Equal("at hub", updates[0].Status)
	suite.Require().NotNil(updates[0].Lat)
	suite.InDelta(23.8, *updates[0].Lat, 1e-9)
	suite.Nil(updates[0].ParcelID)

	query, err = queries.NewListTrackingQuery("", parcelID.String())
	suite.Require().NoError(err)
	updates, err = queries.NewListTrackingQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(updates, 1)
	suite.Nil(updates[0].Lat)
}

func (suite *QueryHandlersIntegrationTestSuite) TestUserQueries() {
	ctx := context.Background()
	for _, address := range []string{"alice@example.com", "bob@example.com", "a_b@sample.org"} {
		u, err := user.NewUser(suite.email(address), "", suite.now)
		suite.Require().NoError(err)
		_, err = suite.store.Users().Register(ctx, u)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.store.Users().SetRole(ctx, suite.email("bob@example.com"), user.RoleAdmin))

	roleQuery, err := queries.NewGetUserRoleQuery("BOB@example.com")
	suite.Require().NoError(err)
	role, err := queries.NewGetUserRoleQueryHandler(suite.database.DB).Handle(ctx, roleQuery)
	suite.Require().NoError(err)
	suite.Equal("admin", role)

	unknown, err := queries.NewGetUserRoleQuery("nobody@example.com")
	suite.Require().NoError(err)
	_, err = queries.NewGetUserRoleQueryHandler(suite.database.DB).Handle(ctx, unknown)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	search, err := queries.NewSearchUsersQuery("EXAMPLE")
	suite.Require().NoError(err)
	found, err := queries.NewSearchUsersQueryHandler(suite.database.DB).Handle(ctx, search)
	suite.Require().NoError(err)
	suite.Len(found, 2)

	literal, err := queries.NewSearchUsersQuery("a_b")
	suite.Require().NoError(err)
	found, err = queries.NewSearchUsersQueryHandler(suite.database.DB).Handle(ctx, literal)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal("a_b@sample.org", found[0].Email)
}

func (suite *QueryHandlersIntegrationTestSuite) TestRiderQueries() {
	ctx := context.Background()
	region, err := kernel.NewRegion("Dhaka")
	suite.Require().NoError(err)

	pending, err := rider.NewRider(rider.Application{
		ID: kernel.NewUUID(), Name: "Pending", Email: suite.email("pending@example.com"), Region: region,
	}, suite.now)
	suite.Require().NoError(err)
	active, err := rider.NewRider(rider.Application{
		ID: kernel.NewUUID(), Name: "Active", Email: suite.email("rider@example.com"), Region: region,
	}, suite.now)
	suite.Require().NoError(err)
	_, err = active.Approve(suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Riders().Add(ctx, pending))
	suite.Require().NoError(suite.store.Riders().Add(ctx, active))

	query, err := queries.NewListRidersQuery("pending", "")
	suite.Require().NoError(err)
	riders, err := queries.NewListRidersQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.Equal("pending@example.com", riders[0].Email)

	query, err = queries.NewActiveRidersByRegionQuery("dhaka")
	suite.Require().NoError(err)
	riders, err = queries.NewListRidersQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.Equal("idle", riders[0].WorkStatus)

	p := suite.addParcel("sender@example.com", suite.now)
	_, err = p.AssignRider(active.ID(), active.Email(), suite.now)
	suite.Require().NoError(err)
	_, err = p.AdvanceTo(parcel.Delivered, suite.now, services.NewEarningCalculator())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Parcels().Update(ctx, p))

	carrying := suite.addParcel("sender@example.com", suite.now)
	_, err = carrying.AssignRider(active.ID(), active.Email(), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Parcels().Update(ctx, carrying))

	pendingQuery, err := queries.NewPendingDeliveriesQuery("Rider@Example.com")
	suite.Require().NoError(err)
	inTransit, err := queries.NewPendingDeliveriesQueryHandler(suite.database.DB).Handle(ctx, pendingQuery)
	suite.Require().NoError(err)
	suite.Require().Len(inTransit, 1)
	suite.Equal(carrying.ID().Bytes(), inTransit[0].ID)

	emails, err := queries.NewListRidersWithUnsettledQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewListRidersWithUnsettledQuery())
	suite.Require().NoError(err)
	suite.Equal([]string{"rider@example.com"}, emails)
}

func (suite *QueryHandlersIntegrationTestSuite) addParcel(owner string, createdAt time.Time) *parcel.Parcel {
	region, err := kernel.NewRegion("Dhaka")
	suite.Require().NoError(err)
	cost, err := kernel.MoneyFromString("100")
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(parcel.Params{
		ID:             kernel.NewUUID(),
		CreatedBy:      suite.email(owner),
		SenderRegion:   region,
		ReceiverRegion: region,
		Cost:           cost,
	}, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Parcels().Add(context.Background(), p))
	return p
}

func (suite *QueryHandlersIntegrationTestSuite) email(address string) kernel.Email {
	email, err := kernel.NewEmail(address)
	suite.Require().NoError(err)
	return email
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
