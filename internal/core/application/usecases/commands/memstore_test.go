package commands_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/payment"
	"parcelflow/internal/core/domain/model/rider"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// memStore is an in-memory entity store with the same conditional-write
// semantics as the postgres adapters. Failures can be injected per
// collection to exercise partial-failure paths.
type memStore struct {
	mu       sync.Mutex
	parcels  map[kernel.UUID]parcel.Snapshot
	riders   map[kernel.UUID]*rider.Rider
	payments []payment.Entry
	cashouts map[kernel.UUID]cashout.Record
	users    map[string]user.User
	tracking []tracking.Update

	failRiderUpdate error
	failLedgerAdd   error
	failParcelWrite error
}

var _ ports.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		parcels:  map[kernel.UUID]parcel.Snapshot{},
		riders:   map[kernel.UUID]*rider.Rider{},
		cashouts: map[kernel.UUID]cashout.Record{},
		users:    map[string]user.User{},
	}
}

func (s *memStore) Parcels() ports.ParcelRepository { return memParcels{s} }
func (s *memStore) Riders() ports.RiderRepository { return memRiders{s} }
func (s *memStore) Payments() ports.PaymentHistoryRepository { return memPayments{s} }
func (s *memStore) Cashouts() ports.CashoutLedger { return memCashouts{s} }
func (s *memStore) Users() ports.UserDirectory { return memUsers{s} }
func (s *memStore) Tracking() ports.TrackingLog { return memTracking{s} }

func (s *memStore) cashoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cashouts)
}

type memParcels struct{ s *memStore }

func (r memParcels) Add(_ context.Context, p *parcel.Parcel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.parcels[p.ID()] = p.Snapshot()
	return nil
}

func (r memParcels) Update(_ context.Context, p *parcel.Parcel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failParcelWrite != nil {
		return r.s.failParcelWrite
	}
	stored, ok := r.s.parcels[p.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("parcel", p.ID())
	}
	if stored.Version != p.Version() {
		return errs.NewVersionIsInvalidError("parcel")
	}
	next := p.Snapshot()
	next.Version = stored.Version + 1
	r.s.parcels[p.ID()] = next
	return nil
}

func (r memParcels) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id)
	}
	return parcel.RestoreParcel(stored)
}

func (r memParcels) Delete(_ context.Context, id kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parcels[id]; !ok {
		return errs.NewObjectNotFoundError("parcel", id)
	}
	delete(r.s.parcels, id)
	return nil
}

func (r memParcels) FindSettleable(_ context.Context, email kernel.Email) ([]*parcel.Parcel, error) {
	return r.filter(func(p *parcel.Parcel) bool {
		return p.AssignedRiderEmail().IsEqual(email) && p.IsSettleable()
	})
}

func (r memParcels) MarkCashedOut(
	_ context.Context, ids []kernel.UUID, batchID kernel.UUID, at time.Time,
) ([]kernel.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failParcelWrite != nil {
		return nil, r.s.failParcelWrite
	}

	var flipped []kernel.UUID
	for _, id := range ids {
		stored, ok := r.s.parcels[id]
		if !ok || stored.PaymentStatus == parcel.CashedOut {
			continue
		}
		batch, ts := batchID, at
		stored.PaymentStatus = parcel.CashedOut
		stored.CashoutID = &batch
		stored.CashedOutAt = &ts
		stored.Version++
		r.s.parcels[id] = stored
		flipped = append(flipped, id)
	}
	return flipped, nil
}

func (r memParcels) FindByCashoutBatch(_ context.Context, batchID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.filter(func(p *parcel.Parcel) bool {
		return p.CashoutID() != nil && p.CashoutID().IsEqual(batchID)
	})
}

func (r memParcels) ListCashoutBatchIDs(_ context.Context, since time.Time) ([]kernel.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []kernel.UUID
	for _, stored := range r.s.parcels {
		if stored.CashoutID == nil || stored.CashedOutAt.Before(since) {
			continue
		}
		if !slices.Contains(ids, *stored.CashoutID) {
			ids = append(ids, *stored.CashoutID)
		}
	}
	return ids, nil
}

func (r memParcels) CountInTransitForRider(_ context.Context, riderID kernel.UUID) (int64, error) {
	parcels, err := r.filter(func(p *parcel.Parcel) bool {
		return p.HasRider() && p.AssignedRiderID().IsEqual(riderID) && p.Status() == parcel.InTransit
	})
	return int64(len(parcels)), err
}

func (r memParcels) filter(keep func(p *parcel.Parcel) bool) ([]*parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*parcel.Parcel
	for _, stored := range r.s.parcels {
		p, err := parcel.RestoreParcel(stored)
		if err != nil {
			return nil, err
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memRiders struct{ s *memStore }

func copyRider(r *rider.Rider) *rider.Rider {
	return copyRiderAt(r, r.Version())
}

func copyRiderAt(r *rider.Rider, version int) *rider.Rider {
	c, err := rider.RestoreRider(rider.Application{
		ID:       r.ID(),
		Name:     r.Name(),
		Email:    r.Email(),
		Phone:    r.Phone(),
		Region:   r.Region(),
		District: r.District(),
	}, r.Status(), r.WorkStatus(), r.CreatedAt(), r.UpdatedAt(), version)
	if err != nil {
		panic(err)
	}
	return c
}

func (r memRiders) Add(_ context.Context, rd *rider.Rider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.riders[rd.ID()] = copyRider(rd)
	return nil
}

func (r memRiders) Update(_ context.Context, rd *rider.Rider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failRiderUpdate != nil {
		return r.s.failRiderUpdate
	}
	stored, ok := r.s.riders[rd.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("rider", rd.ID())
	}
	if stored.Version() != rd.Version() {
		return errs.NewVersionIsInvalidError("rider")
	}
	r.s.riders[rd.ID()] = copyRiderAt(rd, stored.Version()+1)
	return nil
}

func (r memRiders) Get(_ context.Context, id kernel.UUID) (*rider.Rider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.riders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("rider", id)
	}
	return copyRider(stored), nil
}

func (r memRiders) GetByEmail(_ context.Context, email kernel.Email) (*rider.Rider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.riders {
		if stored.Email().IsEqual(email) {
			return copyRider(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("rider", email)
}

func (r memRiders) Delete(_ context.Context, id kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.riders, id)
	return nil
}

func (r memRiders) FindInDelivery(_ context.Context) ([]*rider.Rider, error) {
	return r.filter(func(rd *rider.Rider) bool { return rd.WorkStatus() == rider.InDelivery })
}

func (r memRiders) FindIdle(_ context.Context) ([]*rider.Rider, error) {
	return r.filter(func(rd *rider.Rider) bool {
		return rd.Status() == rider.Active && rd.WorkStatus() == rider.Idle
	})
}

func (r memRiders) filter(keep func(rd *rider.Rider) bool) ([]*rider.Rider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*rider.Rider
	for _, stored := range r.s.riders {
		if keep(stored) {
			out = append(out, copyRider(stored))
		}
	}
	return out, nil
}

// interleavedRiders runs beforeUpdate once, right before the first rider
// write reaches the store, to stand in for a concurrent command.
type interleavedRiders struct {
	ports.RiderRepository
	beforeUpdate func()
}

func (r *interleavedRiders) Update(ctx context.Context, rd *rider.Rider) error {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}
	return r.RiderRepository.Update(ctx, rd)
}

type memPayments struct{ s *memStore }

func (r memPayments) Add(_ context.Context, entry payment.Entry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if existing.TransactionID() == entry.TransactionID() {
			return false, nil
		}
	}
	r.s.payments = append(r.s.payments, entry)
	return true, nil
}

func (r memPayments) GetByTransactionID(_ context.Context, transactionID string) (payment.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if existing.TransactionID() == transactionID {
			return existing, nil
		}
	}
	return payment.Entry{}, errs.NewObjectNotFoundError("payment", transactionID)
}

func (r memPayments) ListSince(_ context.Context, since time.Time) ([]payment.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []payment.Entry
	for _, entry := range r.s.payments {
		if !entry.CreatedAt().Before(since) {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memCashouts struct{ s *memStore }

func (r memCashouts) Add(_ context.Context, record cashout.Record) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failLedgerAdd != nil {
		return false, r.s.failLedgerAdd
	}
	if _, ok := r.s.cashouts[record.ID()]; ok {
		return false, nil
	}
	r.s.cashouts[record.ID()] = record
	return true, nil
}

func (r memCashouts) Exists(_ context.Context, batchID kernel.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.cashouts[batchID]
	return ok, nil
}

type memUsers struct{ s *memStore }

func (r memUsers) Register(_ context.Context, u user.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Email().String()]; ok {
		return false, nil
	}
	r.s.users[u.Email().String()] = u
	return true, nil
}

func (r memUsers) GetByEmail(_ context.Context, email kernel.Email) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email.String()]
	if !ok {
		return user.User{}, errs.NewObjectNotFoundError("user", email)
	}
	return u, nil
}

func (r memUsers) SetRole(_ context.Context, email kernel.Email, role user.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email.String()]
	if !ok {
		return errs.NewObjectNotFoundError("user", email)
	}
	updated, err := user.RestoreUser(u.Email(), u.Name(), role, u.CreatedAt())
	if err != nil {
		return err
	}
	r.s.users[email.String()] = updated
	return nil
}

type memTracking struct{ s *memStore }

func (r memTracking) Append(_ context.Context, update tracking.Update) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tracking = append(r.s.tracking, update)
	return nil
}
