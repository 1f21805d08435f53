package http

import (
	"context"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
)

// Handler runs one use case and returns its result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Action runs one use case that has no result besides success.
type Action[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers groups the use cases the HTTP server dispatches to.
type Handlers struct {
	// Command handlers
	RegisterUser  Handler[commands.RegisterUserCommand, bool]
	SetUserRole   Action[commands.SetUserRoleCommand]
	CreateParcel  Handler[commands.CreateParcelCommand, commands.CreateParcelResult]
	DeleteParcel  Action[commands.DeleteParcelCommand]
	AdvanceStatus Handler[commands.AdvanceStatusCommand, commands.AdvanceStatusResult]
	MarkCollected Handler[commands.MarkCollectedCommand, commands.MarkCollectedResult]
	AssignRider   Handler[commands.AssignRiderCommand, commands.AssignmentResult]
	RecordPayment Handler[commands.RecordPaymentCommand, commands.PaymentResult]
	AddTracking   Handler[commands.AddTrackingUpdateCommand, kernel.UUID]
	ApplyRider    Handler[commands.ApplyRiderCommand, commands.ApplyRiderResult]
	ReviewRider   Handler[commands.ReviewRiderCommand, commands.ReviewRiderResult]
	Cashout       Handler[commands.CashoutCommand, commands.CashoutResult]

	// Query handlers
	GetParcel         Handler[queries.GetParcelQuery, queries.ParcelView]
	ListParcels       Handler[queries.ListParcelsQuery, []queries.ParcelView]
	PaymentHistory    Handler[queries.ListPaymentHistoryQuery, []queries.PaymentView]
	ListCashouts      Handler[queries.ListCashoutsQuery, []queries.CashoutView]
	ListTracking      Handler[queries.ListTrackingQuery, []queries.TrackingView]
	GetUserRole       Handler[queries.GetUserRoleQuery, string]
	SearchUsers       Handler[queries.SearchUsersQuery, []queries.UserView]
	ListRiders        Handler[queries.ListRidersQuery, []queries.RiderView]
	PendingDeliveries Handler[queries.PendingDeliveriesQuery, []queries.ParcelView]
}
