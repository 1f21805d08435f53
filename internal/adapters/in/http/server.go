package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It translates requests into commands and queries and applies the access
// rules of the API; the core itself is unaware of callers.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, logger: logger}
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body servers.RegisterUserJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := requireSelfOrAdmin(ctx, body.Email); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRegisterUserCommand(body.Email, deref(body.Name))
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.UserRegistered{Email: cmd.Email().String(), Created: created})
}

// SearchUsers handles GET /api/v1/users/search.
func (s *Server) SearchUsers(ctx echo.Context, params servers.SearchUsersParams) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewSearchUsersQuery(params.Email)
	if err != nil {
		return s.fail(ctx, err)
	}
	users, err := s.h.SearchUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, users)
}

// GetUserRole handles GET /api/v1/users/{email}/role.
func (s *Server) GetUserRole(ctx echo.Context, email string) error {
	if err := requireSelfOrAdmin(ctx, email); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetUserRoleQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}
	role, err := s.h.GetUserRole.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.UserRole{Role: role})
}

// SetUserRole handles PATCH /api/v1/users/{email}/role.
func (s *Server) SetUserRole(ctx echo.Context, email string) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.SetUserRoleJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetUserRoleCommand(email, body.Role)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SetUserRole.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateParcel handles POST /api/v1/parcels. The caller becomes the owner.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body servers.CreateParcelJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateParcelCommand(commands.CreateParcelInput{
		CreatedBy:      callerFrom(ctx).Email,
		Title:          deref(body.Title),
		ParcelType:     deref(body.ParcelType),
		TrackingID:     deref(body.TrackingId),
		SenderName:     deref(body.SenderName),
		SenderRegion:   body.SenderRegion,
		ReceiverName:   deref(body.ReceiverName),
		ReceiverRegion: body.ReceiverRegion,
		Cost:           body.Cost,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, servers.ParcelCreated{
		Id:         result.ParcelID.String(),
		TrackingId: result.TrackingID,
	})
}

// ListParcels handles GET /api/v1/parcels. Non-admins see the parcels they
// own or carry; without a filter they get the ones they own.
func (s *Server) ListParcels(ctx echo.Context, params servers.ListParcelsParams) error {
	caller := callerFrom(ctx)
	filter := queries.ParcelFilter{
		CreatedBy:     deref(params.CreatedBy),
		RiderEmail:    deref(params.RiderEmail),
		Status:        deref(params.Status),
		PaymentStatus: deref(params.PaymentStatus),
		Limit:         derefInt(params.Limit),
	}

	if !caller.IsAdmin {
		switch {
		case filter.CreatedBy == "" && filter.RiderEmail == "":
			filter.CreatedBy = caller.Email
		case filter.CreatedBy != "" && !sameEmail(caller.Email, filter.CreatedBy),
			filter.RiderEmail != "" && !sameEmail(caller.Email, filter.RiderEmail):
			return s.fail(ctx, errForbidden)
		}
	}

	query, err := queries.NewListParcelsQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	parcels, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, parcels)
}

// GetParcel handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcel(ctx echo.Context, parcelId string) error {
	view, err := s.visibleParcel(ctx, parcelId, true)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// DeleteParcel handles DELETE /api/v1/parcels/{parcelId}.
func (s *Server) DeleteParcel(ctx echo.Context, parcelId string) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceParcelStatus handles PATCH /api/v1/parcels/{parcelId}/status.
// Admins and the assigned rider may move a parcel forward.
func (s *Server) AdvanceParcelStatus(ctx echo.Context, parcelId string) error {
	var body servers.AdvanceParcelStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdvanceStatusCommand(parcelId, body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.visibleParcel(ctx, parcelId, false); err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.AdvanceStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.StatusChanged{
		Changed:       result.Changed,
		Status:        result.Status.String(),
		RiderReleased: result.RiderReleased,
	}
	if result.Earning != nil {
		earning := result.Earning.String()
		response.EarningAmount = &earning
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkParcelCollected handles PATCH /api/v1/parcels/{parcelId}/collected.
func (s *Server) MarkParcelCollected(ctx echo.Context, parcelId string) error {
	cmd, err := commands.NewMarkCollectedCommand(parcelId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.visibleParcel(ctx, parcelId, false); err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MarkCollected.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Collected{
		Changed:        result.Changed,
		DeliveryStatus: result.DeliveryStatus.String(),
	})
}

// AssignRider handles PATCH /api/v1/parcels/{parcelId}/assign.
func (s *Server) AssignRider(ctx echo.Context, parcelId string) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AssignRiderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignRiderCommand(parcelId, body.RiderId, body.RiderEmail)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.AssignRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.AssignmentResult{
		ParcelUpdated: result.ParcelUpdated,
		RiderUpdated:  result.RiderUpdated,
	})
}

// RecordPayment handles POST /api/v1/payments. The payer is the caller.
func (s *Server) RecordPayment(ctx echo.Context) error {
	var body servers.RecordPaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordPaymentCommand(body.ParcelId, body.TransactionId, body.Amount, callerFrom(ctx).Email)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.RecordPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.PaymentResult{
		HistorySaved:  result.HistorySaved,
		ParcelUpdated: result.ParcelUpdated,
	})
}

// ListPaymentHistory handles GET /api/v1/payments.
func (s *Server) ListPaymentHistory(ctx echo.Context, params servers.ListPaymentHistoryParams) error {
	if err := requireSelfOrAdmin(ctx, params.Email); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListPaymentHistoryQuery(params.Email)
	if err != nil {
		return s.fail(ctx, err)
	}
	payments, err := s.h.PaymentHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, payments)
}

// AddTrackingUpdate handles POST /api/v1/tracking. Updates tied to a parcel
// may come from its rider; free-standing ones are admin only.
func (s *Server) AddTrackingUpdate(ctx echo.Context) error {
	var body servers.AddTrackingUpdateJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddTrackingUpdateCommand(commands.AddTrackingUpdateInput{
		ParcelID:   deref(body.ParcelId),
		TrackingID: deref(body.TrackingId),
		Status:     body.Status,
		Location:   deref(body.Location),
		Notes:      deref(body.Notes),
		Lat:        body.Lat,
		Lng:        body.Lng,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if parcelID := deref(body.ParcelId); parcelID != "" {
		if _, err = s.visibleParcel(ctx, parcelID, false); err != nil {
			return s.fail(ctx, err)
		}
	} else if err = requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.AddTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.String()})
}

// ListTracking handles GET /api/v1/tracking.
func (s *Server) ListTracking(ctx echo.Context, params servers.ListTrackingParams) error {
	query, err := queries.NewListTrackingQuery(deref(params.TrackingId), deref(params.ParcelId))
	if err != nil {
		return s.fail(ctx, err)
	}
	updates, err := s.h.ListTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updates)
}

// ApplyRider handles POST /api/v1/riders. Callers apply for themselves.
func (s *Server) ApplyRider(ctx echo.Context) error {
	var body servers.ApplyRiderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyRiderCommand(commands.ApplyRiderInput{
		Name:     body.Name,
		Email:    callerFrom(ctx).Email,
		Phone:    deref(body.Phone),
		Region:   body.Region,
		District: deref(body.District),
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ApplyRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	return ctx.JSON(status, servers.RiderApplied{Id: result.RiderID.String(), Created: result.Created})
}

// ListRiders handles GET /api/v1/riders.
func (s *Server) ListRiders(ctx echo.Context, params servers.ListRidersParams) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListRidersQuery(params.Status, deref(params.Region))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listRiders(ctx, query)
}

// ListActiveRiders handles GET /api/v1/riders/active.
func (s *Server) ListActiveRiders(ctx echo.Context, params servers.ListActiveRidersParams) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewActiveRidersByRegionQuery(deref(params.Region))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listRiders(ctx, query)
}

func (s *Server) listRiders(ctx echo.Context, query queries.ListRidersQuery) error {
	riders, err := s.h.ListRiders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, riders)
}

// ListPendingDeliveries handles GET /api/v1/riders/deliveries.
func (s *Server) ListPendingDeliveries(ctx echo.Context, params servers.ListPendingDeliveriesParams) error {
	email := s.riderEmail(ctx, params.RiderEmail)
	if err := requireSelfOrAdmin(ctx, email); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewPendingDeliveriesQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}
	parcels, err := s.h.PendingDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, parcels)
}

// ReviewRider handles PATCH /api/v1/riders/{riderId}/review.
func (s *Server) ReviewRider(ctx echo.Context, riderId string) error {
	if err := requireAdmin(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.ReviewRiderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReviewRiderCommand(riderId, commands.ReviewDecision(body.Decision))
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ReviewRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Reviewed{
		RiderUpdated: result.RiderUpdated,
		RoleSynced:   result.RoleSynced,
		Deleted:      result.Deleted,
	})
}

// Cashout handles POST /api/v1/riders/cashout. A rider with nothing due
// gets settled=0 rather than an error.
func (s *Server) Cashout(ctx echo.Context) error {
	var body servers.CashoutJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	email := s.riderEmail(ctx, body.RiderEmail)
	if err := requireSelfOrAdmin(ctx, email); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCashoutCommand(email)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.Cashout.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, commands.ErrNothingToSettle) {
		return ctx.JSON(http.StatusOK, servers.CashoutResult{Settled: 0})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	batchID := result.BatchID.String()
	total := result.TotalEarning.String()
	cashedOutAt := result.CashedOutAt
	parcelIDs := make([]string, len(result.ParcelIDs))
	for i, id := range result.ParcelIDs {
		parcelIDs[i] = id.String()
	}
	return ctx.JSON(http.StatusOK, servers.CashoutResult{
		Settled:      result.ParcelCount(),
		BatchId:      &batchID,
		ParcelIds:    parcelIDs,
		TotalEarning: &total,
		CashedOutAt:  &cashedOutAt,
	})
}

// ListCashouts handles GET /api/v1/riders/cashouts.
func (s *Server) ListCashouts(ctx echo.Context, params servers.ListCashoutsParams) error {
	email := s.riderEmail(ctx, params.RiderEmail)
	if err := requireSelfOrAdmin(ctx, email); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListCashoutsQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}
	cashouts, err := s.h.ListCashouts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cashouts)
}

// visibleParcel loads a parcel the caller may act on. Admins may act on any
// parcel and the assigned rider on its own; with ownerMayRead the creator
// may also read it.
func (s *Server) visibleParcel(ctx echo.Context, parcelID string, ownerMayRead bool) (queries.ParcelView, error) {
	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return queries.ParcelView{}, err
	}
	view, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queries.ParcelView{}, err
	}

	caller := callerFrom(ctx)
	switch {
	case caller.IsAdmin,
		sameEmail(caller.Email, view.AssignedRiderEmail),
		ownerMayRead && sameEmail(caller.Email, view.CreatedBy):
		return view, nil
	}
	return queries.ParcelView{}, errForbidden
}

// riderEmail defaults an absent rider email to the caller's.
func (s *Server) riderEmail(ctx echo.Context, email *string) string {
	if email == nil || *email == "" {
		return callerFrom(ctx).Email
	}
	return *email
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
