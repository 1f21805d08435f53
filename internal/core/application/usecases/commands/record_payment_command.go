package commands

import (
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand links a confirmed payment-processor transaction to a parcel.
type RecordPaymentCommand struct {
	parcelID      kernel.UUID
	transactionID string
	amount        kernel.Money
	email         kernel.Email
	guard         guard.ConstructorGuard
}

func NewRecordPaymentCommand(parcelID, transactionID, amount, email string) (RecordPaymentCommand, error) {
	pID, parcelErr := requiredUUID("parcelID", parcelID)
	txID, txErr := requiredString("transactionID", transactionID)
	payer, emailErr := requiredEmail("email", email)
	money, amountErr := kernel.MoneyFromString(strings.TrimSpace(amount))

	if err := errors.Join(parcelErr, txErr, amountErr, emailErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		parcelID:      pID,
		transactionID: txID,
		amount:        money,
		email:         payer,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c RecordPaymentCommand) TransactionID() string {
	return c.transactionID
}

func (c RecordPaymentCommand) Amount() kernel.Money {
	return c.amount
}

func (c RecordPaymentCommand) Email() kernel.Email {
	return c.email
}
