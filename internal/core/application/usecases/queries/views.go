// Package queries contains the read side. Handlers read straight from the
// database into flat views and never load aggregates.
package queries

import (
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ParcelView is a parcel as shown to senders, riders and admins.
type ParcelView struct {
	ID                 uuid.UUID           `json:"id"`
	TrackingID         string              `json:"trackingId"`
	Title              string              `json:"title"`
	ParcelType         string              `json:"parcelType"`
	CreatedBy          string              `json:"createdBy"`
	SenderName         string              `json:"senderName"`
	SenderRegion       string              `json:"senderRegion"`
	ReceiverName       string              `json:"receiverName"`
	ReceiverRegion     string              `json:"receiverRegion"`
	Cost               decimal.Decimal     `json:"cost"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"paymentStatus"`
	DeliveryStatus     string              `json:"deliveryStatus"`
	AssignedRiderID    *uuid.UUID          `json:"assignedRiderId,omitempty"`
	AssignedRiderEmail string              `json:"assignedRiderEmail,omitempty"`
	TransactionID      string              `json:"transactionId,omitempty"`
	EarningAmount      decimal.NullDecimal `json:"earningAmount"`
	CashoutID          *uuid.UUID          `json:"cashoutId,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	PaidAt             *time.Time          `json:"paidAt,omitempty"`
	AssignedAt         *time.Time          `json:"assignedAt,omitempty"`
	CollectedAt        *time.Time          `json:"collectedAt,omitempty"`
	DeliveryDate       *time.Time          `json:"deliveryDate,omitempty"`
	CashedOutAt        *time.Time          `json:"cashedOutAt,omitempty"`
	Version            int                 `json:"version"`
}

type PaymentView struct {
	ID            uuid.UUID       `json:"id"`
	ParcelID      uuid.UUID       `json:"parcelId"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Email         string          `json:"email"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CashoutView struct {
	ID           uuid.UUID       `json:"id"`
	RiderEmail   string          `json:"riderEmail"`
	ParcelIDs    pq.StringArray  `json:"parcelIds"`
	ParcelCount  int             `json:"parcelCount"`
	TotalEarning decimal.Decimal `json:"totalEarning"`
	CashedOutAt  time.Time       `json:"cashedOutAt"`
}

type TrackingView struct {
	ID         uuid.UUID  `json:"id"`
	ParcelID   *uuid.UUID `json:"parcelId,omitempty"`
	TrackingID string     `json:"trackingId,omitempty"`
	Status     string     `json:"status"`
	Location   string     `json:"location,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Lat        *float64   `json:"lat,omitempty"`
	Lng        *float64   `json:"lng,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type RiderView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Region     string    `json:"region"`
	District   string    `json:"district,omitempty"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserView struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func requiredEmail(param, s string) (kernel.Email, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return kernel.Email{}, errs.NewValueIsRequiredError(param)
	}
	return kernel.NewEmail(s)
}

func optionalEmail(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	email, err := kernel.NewEmail(s)
	if err != nil {
		return "", err
	}
	return email.String(), nil
}

// normalized folds a status column onto the canonical enum spelling.
func normalized(column string) string {
	return "REPLACE(REPLACE(LOWER(TRIM(" + column + ")), '-', '_'), ' ', '_')"
}
