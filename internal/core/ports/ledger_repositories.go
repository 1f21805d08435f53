package ports

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/cashout"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/payment"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/domain/model/user"
)

// PaymentHistoryRepository is the append-only payment ledger.
type PaymentHistoryRepository interface {
	// Add inserts entry unless an entry with the same transaction id exists.
	// inserted is false for a replay.
	Add(ctx context.Context, entry payment.Entry) (inserted bool, err error)

	// GetByTransactionID returns errs.ObjectNotFoundError for unknown ids.
	GetByTransactionID(ctx context.Context, transactionID string) (payment.Entry, error)

	// ListSince returns entries created at or after since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]payment.Entry, error)
}

// CashoutLedger is the append-only settlement ledger.
type CashoutLedger interface {
	// Add inserts record unless a record with the same batch id exists.
	Add(ctx context.Context, record cashout.Record) (inserted bool, err error)

	// Exists reports whether a record for batchID was written.
	Exists(ctx context.Context, batchID kernel.UUID) (bool, error)
}

// UserDirectory owns accounts and is the single place where roles change.
type UserDirectory interface {
	// Register inserts u unless the email is known; inserted is false then.
	Register(ctx context.Context, u user.User) (inserted bool, err error)

	// GetByEmail returns errs.ObjectNotFoundError for unknown emails.
	GetByEmail(ctx context.Context, email kernel.Email) (user.User, error)

	// SetRole changes the role of a known account.
	SetRole(ctx context.Context, email kernel.Email, role user.Role) error
}

// TrackingLog stores tracking updates.
type TrackingLog interface {
	Append(ctx context.Context, update tracking.Update) error
}
