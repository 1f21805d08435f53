// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types and the echo glue follow the layout oapi-codegen produces for
// api/openapi.yaml and are kept in sync with that document by hand.
package servers

import (
	"time"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error defines model for Error.
type Error struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Step      *string  `json:"step,omitempty"`
	Completed []string `json:"completed,omitempty"`
	Ids       []string `json:"ids,omitempty"`
}

// NewUser defines model for NewUser.
type NewUser struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// UserRegistered defines model for UserRegistered.
type UserRegistered struct {
	Created bool   `json:"created"`
	Email   string `json:"email"`
}

// UserRole defines model for UserRole.
type UserRole struct {
	Role string `json:"role"`
}

// NewParcel defines model for NewParcel.
type NewParcel struct {
	Cost           string  `json:"cost"`
	ParcelType     *string `json:"parcelType,omitempty"`
	ReceiverName   *string `json:"receiverName,omitempty"`
	ReceiverRegion string  `json:"receiverRegion"`
	SenderName     *string `json:"senderName,omitempty"`
	SenderRegion   string  `json:"senderRegion"`
	Title          *string `json:"title,omitempty"`
	TrackingId     *string `json:"trackingId,omitempty"`
}

// ParcelCreated defines model for ParcelCreated.
type ParcelCreated struct {
	Id         string `json:"id"`
	TrackingId string `json:"trackingId"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status string `json:"status"`
}

// StatusChanged defines model for StatusChanged.
type StatusChanged struct {
	Changed       bool    `json:"changed"`
	EarningAmount *string `json:"earningAmount,omitempty"`
	RiderReleased bool    `json:"riderReleased"`
	Status        string  `json:"status"`
}

// Collected defines model for Collected.
type Collected struct {
	Changed        bool   `json:"changed"`
	DeliveryStatus string `json:"deliveryStatus"`
}

// Assignment defines model for Assignment.
type Assignment struct {
	RiderEmail string `json:"riderEmail"`
	RiderId    string `json:"riderId"`
}

// AssignmentResult defines model for AssignmentResult.
type AssignmentResult struct {
	ParcelUpdated bool `json:"parcelUpdated"`
	RiderUpdated  bool `json:"riderUpdated"`
}

// NewPayment defines model for NewPayment.
type NewPayment struct {
	Amount        string `json:"amount"`
	ParcelId      string `json:"parcelId"`
	TransactionId string `json:"transactionId"`
}

// PaymentResult defines model for PaymentResult.
type PaymentResult struct {
	HistorySaved  bool `json:"historySaved"`
	ParcelUpdated bool `json:"parcelUpdated"`
}

// NewTrackingUpdate defines model for NewTrackingUpdate.
type NewTrackingUpdate struct {
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	ParcelId   *string  `json:"parcelId,omitempty"`
	Status     string   `json:"status"`
	TrackingId *string  `json:"trackingId,omitempty"`
}

// Created defines model for Created.
type Created struct {
	Id string `json:"id"`
}

// RiderApplication defines model for RiderApplication.
type RiderApplication struct {
	District *string `json:"district,omitempty"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Region   string  `json:"region"`
}

// RiderApplied defines model for RiderApplied.
type RiderApplied struct {
	Created bool   `json:"created"`
	Id      string `json:"id"`
}

// Review defines model for Review.
type Review struct {
	Decision string `json:"decision"`
}

// Reviewed defines model for Reviewed.
type Reviewed struct {
	Deleted      bool `json:"deleted"`
	RiderUpdated bool `json:"riderUpdated"`
	RoleSynced   bool `json:"roleSynced"`
}

// CashoutRequest defines model for CashoutRequest.
type CashoutRequest struct {
	RiderEmail *string `json:"riderEmail,omitempty"`
}

// CashoutResult defines model for CashoutResult.
type CashoutResult struct {
	BatchId      *string    `json:"batchId,omitempty"`
	CashedOutAt  *time.Time `json:"cashedOutAt,omitempty"`
	ParcelIds    []string   `json:"parcelIds,omitempty"`
	Settled      int        `json:"settled"`
	TotalEarning *string    `json:"totalEarning,omitempty"`
}

// SearchUsersParams defines parameters for SearchUsers.
type SearchUsersParams struct {
	Email string `form:"email" json:"email"`
}

// ListParcelsParams defines parameters for ListParcels.
type ListParcelsParams struct {
	CreatedBy     *string `form:"createdBy,omitempty" json:"createdBy,omitempty"`
	RiderEmail    *string `form:"riderEmail,omitempty" json:"riderEmail,omitempty"`
	Status        *string `form:"status,omitempty" json:"status,omitempty"`
	PaymentStatus *string `form:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	Limit         *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListPaymentHistoryParams defines parameters for ListPaymentHistory.
type ListPaymentHistoryParams struct {
	Email string `form:"email" json:"email"`
}

// ListTrackingParams defines parameters for ListTracking.
type ListTrackingParams struct {
	TrackingId *string `form:"trackingId,omitempty" json:"trackingId,omitempty"`
	ParcelId   *string `form:"parcelId,omitempty" json:"parcelId,omitempty"`
}

// ListRidersParams defines parameters for ListRiders.
type ListRidersParams struct {
	Status string  `form:"status" json:"status"`
	Region *string `form:"region,omitempty" json:"region,omitempty"`
}

// ListActiveRidersParams defines parameters for ListActiveRiders.
type ListActiveRidersParams struct {
	Region *string `form:"region,omitempty" json:"region,omitempty"`
}

// ListPendingDeliveriesParams defines parameters for ListPendingDeliveries.
type ListPendingDeliveriesParams struct {
	RiderEmail *string `form:"riderEmail,omitempty" json:"riderEmail,omitempty"`
}

// ListCashoutsParams defines parameters for ListCashouts.
type ListCashoutsParams struct {
	RiderEmail *string `form:"riderEmail,omitempty" json:"riderEmail,omitempty"`
}

// RegisterUserJSONRequestBody defines body for RegisterUser for application/json ContentType.
type RegisterUserJSONRequestBody = NewUser

// SetUserRoleJSONRequestBody defines body for SetUserRole for application/json ContentType.
type SetUserRoleJSONRequestBody = UserRole

// CreateParcelJSONRequestBody defines body for CreateParcel for application/json ContentType.
type CreateParcelJSONRequestBody = NewParcel

// AdvanceParcelStatusJSONRequestBody defines body for AdvanceParcelStatus for application/json ContentType.
type AdvanceParcelStatusJSONRequestBody = StatusChange

// AssignRiderJSONRequestBody defines body for AssignRider for application/json ContentType.
type AssignRiderJSONRequestBody = Assignment

// RecordPaymentJSONRequestBody defines body for RecordPayment for application/json ContentType.
type RecordPaymentJSONRequestBody = NewPayment

// AddTrackingUpdateJSONRequestBody defines body for AddTrackingUpdate for application/json ContentType.
type AddTrackingUpdateJSONRequestBody = NewTrackingUpdate

// ApplyRiderJSONRequestBody defines body for ApplyRider for application/json ContentType.
type ApplyRiderJSONRequestBody = RiderApplication

// ReviewRiderJSONRequestBody defines body for ReviewRider for application/json ContentType.
type ReviewRiderJSONRequestBody = Review

// CashoutJSONRequestBody defines body for Cashout for application/json ContentType.
type CashoutJSONRequestBody = CashoutRequest
