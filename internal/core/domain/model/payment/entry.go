// Package payment holds the immutable payment history entry written when the
// payment processor confirms a parcel payment.
package payment

import (
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// StatusSucceeded is the only status the lifecycle core records.
const StatusSucceeded = "succeeded"

var (
	ErrTransactionIDIsRequired = errs.NewValueIsRequiredError("transactionID")
	ErrEmailIsRequired         = errs.NewValueIsRequiredError("email")
)

// Entry is an append-only record of a successful payment. The transaction id
// is unique, so replaying the same confirmation never creates a second entry.
type Entry struct {
	id            kernel.UUID
	parcelID      kernel.UUID
	transactionID string
	amount        kernel.Money
	email         kernel.Email
	status        string
	createdAt     time.Time
}

func NewEntry(
	id, parcelID kernel.UUID,
	transactionID string,
	amount kernel.Money,
	email kernel.Email,
	createdAt time.Time,
) (Entry, error) {
	return RestoreEntry(id, parcelID, transactionID, amount, email, StatusSucceeded, createdAt)
}

func RestoreEntry(
	id, parcelID kernel.UUID,
	transactionID string,
	amount kernel.Money,
	email kernel.Email,
	status string,
	createdAt time.Time,
) (Entry, error) {
	transactionID = strings.TrimSpace(transactionID)

	var txErr, emailErr error
	if transactionID == "" {
		txErr = ErrTransactionIDIsRequired
	}
	if email.IsZero() {
		emailErr = ErrEmailIsRequired
	}
	if err := errors.Join(id.Validate(), parcelID.Validate(), txErr, emailErr); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:            id,
		parcelID:      parcelID,
		transactionID: transactionID,
		amount:        amount,
		email:         email,
		status:        status,
		createdAt:     createdAt,
	}, nil
}

func (e Entry) ID() kernel.UUID { return e.id }
func (e Entry) ParcelID() kernel.UUID { return e.parcelID }
func (e Entry) TransactionID() string { return e.transactionID }
func (e Entry) Amount() kernel.Money { return e.amount }
func (e Entry) Email() kernel.Email { return e.email }
func (e Entry) Status() string { return e.status }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
