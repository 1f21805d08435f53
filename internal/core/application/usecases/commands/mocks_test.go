package commands_test

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/payment"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockParcelRepository) FindSettleable(ctx context.Context, email kernel.Email) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, email)
	parcels, _ := args.Get(0).([]*parcel.Parcel)
	return parcels, args.Error(1)
}

func (m *MockParcelRepository) MarkCashedOut(
	ctx context.Context, ids []kernel.UUID, batchID kernel.UUID, at time.Time,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, ids, batchID, at)
	flipped, _ := args.Get(0).([]kernel.UUID)
	return flipped, args.Error(1)
}

func (m *MockParcelRepository) FindByCashoutBatch(ctx context.Context, batchID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, batchID)
	parcels, _ := args.Get(0).([]*parcel.Parcel)
	return parcels, args.Error(1)
}

func (m *MockParcelRepository) ListCashoutBatchIDs(ctx context.Context, since time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, since)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockParcelRepository) CountInTransitForRider(ctx context.Context, riderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*rider.Rider)
	return r, args.Error(1)
}

func (m *MockRiderRepository) GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).(*rider.Rider)
	return r, args.Error(1)
}

func (m *MockRiderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRiderRepository) FindInDelivery(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	riders, _ := args.Get(0).([]*rider.Rider)
	return riders, args.Error(1)
}

func (m *MockRiderRepository) FindIdle(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	riders, _ := args.Get(0).([]*rider.Rider)
	return riders, args.Error(1)
}

type MockPaymentHistory struct{ mock.Mock }

func (m *MockPaymentHistory) Add(ctx context.Context, entry payment.Entry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentHistory) GetByTransactionID(ctx context.Context, transactionID string) (payment.Entry, error) {
	args := m.Called(ctx, transactionID)
	entry, _ := args.Get(0).(payment.Entry)
	return entry, args.Error(1)
}

func (m *MockPaymentHistory) ListSince(ctx context.Context, since time.Time) ([]payment.Entry, error) {
	args := m.Called(ctx, since)
	entries, _ := args.Get(0).([]payment.Entry)
	return entries, args.Error(1)
}

type MockCashoutLedger struct{ mock.Mock }

func (m *MockCashoutLedger) Add(ctx context.Context, record cashout.Record) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashoutLedger) Exists(ctx context.Context, batchID kernel.UUID) (bool, error) {
	args := m.Called(ctx, batchID)
	return args.Bool(0), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Register(ctx context.Context, u user.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) GetByEmail(ctx context.Context, email kernel.Email) (user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(user.User)
	return u, args.Error(1)
}

func (m *MockUserDirectory) SetRole(ctx context.Context, email kernel.Email, role user.Role) error {
	return m.Called(ctx, email, role).Error(0)
}

type MockTrackingLog struct{ mock.Mock }

func (m *MockTrackingLog) Append(ctx context.Context, update tracking.Update) error {
	return m.Called(ctx, update).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	return m.Called(ctx, events).Error(0)
}
