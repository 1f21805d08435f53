// Package parcelrepo persists parcel aggregates in the parcels table.
// Every write of a fetched parcel is conditional on its version column.
package parcelrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the row layout of a parcel. Enum axes are stored by their
// canonical names so ad hoc queries read naturally.
type ParcelDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TrackingID         string              `gorm:"uniqueIndex;not null"`
	Title              string
	ParcelType         string
	CreatedBy          string              `gorm:"index;not null"`
	SenderName         string
	SenderRegion       string              `gorm:"not null"`
	ReceiverName       string
	ReceiverRegion     string              `gorm:"not null"`
	Cost               decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	Status             string              `gorm:"index;not null"`
	PaymentStatus      string              `gorm:"index;not null"`
	DeliveryStatus     string              `gorm:"not null"`
	AssignedRiderID    *uuid.UUID          `gorm:"type:uuid;index"`
	AssignedRiderEmail string              `gorm:"index"`
	TransactionID      string
	EarningAmount      decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CashoutID          *uuid.UUID          `gorm:"type:uuid;index"`
	CreatedAt          time.Time           `gorm:"autoCreateTime:false;index"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime:false"`
	PaidAt             *time.Time
	AssignedAt         *time.Time
	CollectedAt        *time.Time
	DeliveryDate       *time.Time
	CashedOutAt        *time.Time
	Version            int                 `gorm:"not null;default:0"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	s := p.Snapshot()

	var earning decimal.NullDecimal
	if s.Earning != nil {
		earning = decimal.NewNullDecimal(s.Earning.Amount())
	}

	return ParcelDTO{
		ID:                 s.ID.Bytes(),
		TrackingID:         s.TrackingID,
		Title:              s.Title,
		ParcelType:         s.ParcelType,
		CreatedBy:          s.CreatedBy.String(),
		SenderName:         s.SenderName,
		SenderRegion:       s.SenderRegion.String(),
		ReceiverName:       s.ReceiverName,
		ReceiverRegion:     s.ReceiverRegion.String(),
		Cost:               s.Cost.Amount(),
		Status:             s.Status.String(),
		PaymentStatus:      s.PaymentStatus.String(),
		DeliveryStatus:     s.DeliveryStatus.String(),
		AssignedRiderID:    uuidPtr(s.AssignedRiderID),
		AssignedRiderEmail: s.AssignedRiderEmail.String(),
		TransactionID:      s.TransactionID,
		EarningAmount:      earning,
		CashoutID:          uuidPtr(s.CashoutID),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		PaidAt:             s.PaidAt,
		AssignedAt:         s.AssignedAt,
		CollectedAt:        s.CollectedAt,
		DeliveryDate:       s.DeliveryDate,
		CashedOutAt:        s.CashedOutAt,
		Version:            s.Version,
	}
}

// toDomain parses every column back through the domain constructors, so
// rows written by older clients with legacy spellings are normalized on read.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.NewEmail(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	senderRegion, err := kernel.NewRegion(dto.SenderRegion)
	if err != nil {
		return nil, err
	}
	receiverRegion, err := kernel.NewRegion(dto.ReceiverRegion)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost)
	if err != nil {
		return nil, err
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := parcel.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	deliveryStatus, err := parcel.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	riderID, err := kernelUUIDPtr(dto.AssignedRiderID)
	if err != nil {
		return nil, err
	}
	cashoutID, err := kernelUUIDPtr(dto.CashoutID)
	if err != nil {
		return nil, err
	}

	var riderEmail kernel.Email
	if dto.AssignedRiderEmail != "" {
		if riderEmail, err = kernel.NewEmail(dto.AssignedRiderEmail); err != nil {
			return nil, err
		}
	}

	var earning *kernel.Money
	if dto.EarningAmount.Valid {
		amount, moneyErr := kernel.NewMoney(dto.EarningAmount.Decimal)
		if moneyErr != nil {
			return nil, moneyErr
		}
		earning = &amount
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		Params: parcel.Params{
			ID:             id,
			TrackingID:     dto.TrackingID,
			Title:          dto.Title,
			ParcelType:     dto.ParcelType,
			CreatedBy:      createdBy,
			SenderName:     dto.SenderName,
			SenderRegion:   senderRegion,
			ReceiverName:   dto.ReceiverName,
			ReceiverRegion: receiverRegion,
			Cost:           cost,
		},
		Status:             status,
		PaymentStatus:      paymentStatus,
		DeliveryStatus:     deliveryStatus,
		AssignedRiderID:    riderID,
		AssignedRiderEmail: riderEmail,
		TransactionID:      dto.TransactionID,
		Earning:            earning,
		CashoutID:          cashoutID,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		PaidAt:             dto.PaidAt,
		AssignedAt:         dto.AssignedAt,
		CollectedAt:        dto.CollectedAt,
		DeliveryDate:       dto.DeliveryDate,
		CashedOutAt:        dto.CashedOutAt,
		Version:            dto.Version,
	})
}

func toDomainList(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}
