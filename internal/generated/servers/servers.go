package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/users)
	RegisterUser(ctx echo.Context) error
	// (GET /api/v1/users/search)
	SearchUsers(ctx echo.Context, params SearchUsersParams) error
	// (GET /api/v1/users/{email}/role)
	GetUserRole(ctx echo.Context, email string) error
	// (PATCH /api/v1/users/{email}/role)
	SetUserRole(ctx echo.Context, email string) error
	// (POST /api/v1/parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /api/v1/parcels)
	ListParcels(ctx echo.Context, params ListParcelsParams) error
	// (GET /api/v1/parcels/{parcelId})
	GetParcel(ctx echo.Context, parcelId string) error
	// (DELETE /api/v1/parcels/{parcelId})
	DeleteParcel(ctx echo.Context, parcelId string) error
	// (PATCH /api/v1/parcels/{parcelId}/status)
	AdvanceParcelStatus(ctx echo.Context, parcelId string) error
	// (PATCH /api/v1/parcels/{parcelId}/collected)
	MarkParcelCollected(ctx echo.Context, parcelId string) error
	// (PATCH /api/v1/parcels/{parcelId}/assign)
	AssignRider(ctx echo.Context, parcelId string) error
	// (POST /api/v1/payments)
	RecordPayment(ctx echo.Context) error
	// (GET /api/v1/payments)
	ListPaymentHistory(ctx echo.Context, params ListPaymentHistoryParams) error
	// (POST /api/v1/tracking)
	AddTrackingUpdate(ctx echo.Context) error
	// (GET /api/v1/tracking)
	ListTracking(ctx echo.Context, params ListTrackingParams) error
	// (POST /api/v1/riders)
	ApplyRider(ctx echo.Context) error
	// (GET /api/v1/riders)
	ListRiders(ctx echo.Context, params ListRidersParams) error
	// (GET /api/v1/riders/active)
	ListActiveRiders(ctx echo.Context, params ListActiveRidersParams) error
	// (GET /api/v1/riders/deliveries)
	ListPendingDeliveries(ctx echo.Context, params ListPendingDeliveriesParams) error
	// (PATCH /api/v1/riders/{riderId}/review)
	ReviewRider(ctx echo.Context, riderId string) error
	// (POST /api/v1/riders/cashout)
	Cashout(ctx echo.Context) error
	// (GET /api/v1/riders/cashouts)
	ListCashouts(ctx echo.Context, params ListCashoutsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathParam(ctx echo.Context, name string, dest *string) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func queryParam(ctx echo.Context, name string, required bool, dest any) error {
	err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), dest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// RegisterUser converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.RegisterUser(ctx)
}

// SearchUsers converts echo context to params.
func (w *ServerInterfaceWrapper) SearchUsers(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params SearchUsersParams
	if err := queryParam(ctx, "email", true, &params.Email); err != nil {
		return err
	}
	return w.Handler.SearchUsers(ctx, params)
}

// GetUserRole converts echo context to params.
func (w *ServerInterfaceWrapper) GetUserRole(ctx echo.Context) error {
	var email string
	if err := pathParam(ctx, "email", &email); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetUserRole(ctx, email)
}

// SetUserRole converts echo context to params.
func (w *ServerInterfaceWrapper) SetUserRole(ctx echo.Context) error {
	var email string
	if err := pathParam(ctx, "email", &email); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.SetUserRole(ctx, email)
}

// CreateParcel converts echo context to params.
func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateParcel(ctx)
}

// ListParcels converts echo context to params.
func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListParcelsParams
	if err := queryParam(ctx, "createdBy", false, &params.CreatedBy); err != nil {
		return err
	}
	if err := queryParam(ctx, "riderEmail", false, &params.RiderEmail); err != nil {
		return err
	}
	if err := queryParam(ctx, "status", false, &params.Status); err != nil {
		return err
	}
	if err := queryParam(ctx, "paymentStatus", false, &params.PaymentStatus); err != nil {
		return err
	}
	if err := queryParam(ctx, "limit", false, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListParcels(ctx, params)
}

// GetParcel converts echo context to params.
func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	var parcelId string
	if err := pathParam(ctx, "parcelId", &parcelId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetParcel(ctx, parcelId)
}

// DeleteParcel converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteParcel(ctx echo.Context) error {
	var parcelId string
	if err := pathParam(ctx, "parcelId", &parcelId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeleteParcel(ctx, parcelId)
}

// AdvanceParcelStatus converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceParcelStatus(ctx echo.Context) error {
	var parcelId string
	if err := pathParam(ctx, "parcelId", &parcelId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.AdvanceParcelStatus(ctx, parcelId)
}

// MarkParcelCollected converts echo context to params.
func (w *ServerInterfaceWrapper) MarkParcelCollected(ctx echo.Context) error {
	var parcelId string
	if err := pathParam(ctx, "parcelId", &parcelId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.MarkParcelCollected(ctx, parcelId)
}

// AssignRider converts echo context to params.
func (w *ServerInterfaceWrapper) AssignRider(ctx echo.Context) error {
	var parcelId string
	if err := pathParam(ctx, "parcelId", &parcelId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.AssignRider(ctx, parcelId)
}

// RecordPayment converts echo context to params.
func (w *ServerInterfaceWrapper) RecordPayment(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.RecordPayment(ctx)
}

// ListPaymentHistory converts echo context to params.
func (w *ServerInterfaceWrapper) ListPaymentHistory(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListPaymentHistoryParams
	if err := queryParam(ctx, "email", true, &params.Email); err != nil {
		return err
	}
	return w.Handler.ListPaymentHistory(ctx, params)
}

// AddTrackingUpdate converts echo context to params.
func (w *ServerInterfaceWrapper) AddTrackingUpdate(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.AddTrackingUpdate(ctx)
}

// ListTracking converts echo context to params.
func (w *ServerInterfaceWrapper) ListTracking(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListTrackingParams
	if err := queryParam(ctx, "trackingId", false, &params.TrackingId); err != nil {
		return err
	}
	if err := queryParam(ctx, "parcelId", false, &params.ParcelId); err != nil {
		return err
	}
	return w.Handler.ListTracking(ctx, params)
}

// ApplyRider converts echo context to params.
func (w *ServerInterfaceWrapper) ApplyRider(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.ApplyRider(ctx)
}

// ListRiders converts echo context to params.
func (w *ServerInterfaceWrapper) ListRiders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListRidersParams
	if err := queryParam(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	if err := queryParam(ctx, "region", false, &params.Region); err != nil {
		return err
	}
	return w.Handler.ListRiders(ctx, params)
}

// ListActiveRiders converts echo context to params.
func (w *ServerInterfaceWrapper) ListActiveRiders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListActiveRidersParams
	if err := queryParam(ctx, "region", false, &params.Region); err != nil {
		return err
	}
	return w.Handler.ListActiveRiders(ctx, params)
}

// ListPendingDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) ListPendingDeliveries(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListPendingDeliveriesParams
	if err := queryParam(ctx, "riderEmail", false, &params.RiderEmail); err != nil {
		return err
	}
	return w.Handler.ListPendingDeliveries(ctx, params)
}

// ReviewRider converts echo context to params.
func (w *ServerInterfaceWrapper) ReviewRider(ctx echo.Context) error {
	var riderId string
	if err := pathParam(ctx, "riderId", &riderId); err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.ReviewRider(ctx, riderId)
}

// Cashout converts echo context to params.
func (w *ServerInterfaceWrapper) Cashout(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.Cashout(ctx)
}

// ListCashouts converts echo context to params.
func (w *ServerInterfaceWrapper) ListCashouts(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	var params ListCashoutsParams
	if err := queryParam(ctx, "riderEmail", false, &params.RiderEmail); err != nil {
		return err
	}
	return w.Handler.ListCashouts(ctx, params)
}

// EchoRouter is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/users", wrapper.RegisterUser)
	router.GET(baseURL+"/api/v1/users/search", wrapper.SearchUsers)
	router.GET(baseURL+"/api/v1/users/:email/role", wrapper.GetUserRole)
	router.PATCH(baseURL+"/api/v1/users/:email/role", wrapper.SetUserRole)
	router.POST(baseURL+"/api/v1/parcels", wrapper.CreateParcel)
	router.GET(baseURL+"/api/v1/parcels", wrapper.ListParcels)
	router.GET(baseURL+"/api/v1/parcels/:parcelId", wrapper.GetParcel)
	router.DELETE(baseURL+"/api/v1/parcels/:parcelId", wrapper.DeleteParcel)
	router.PATCH(baseURL+"/api/v1/parcels/:parcelId/status", wrapper.AdvanceParcelStatus)
	router.PATCH(baseURL+"/api/v1/parcels/:parcelId/collected", wrapper.MarkParcelCollected)
	router.PATCH(baseURL+"/api/v1/parcels/:parcelId/assign", wrapper.AssignRider)
	router.POST(baseURL+"/api/v1/payments", wrapper.RecordPayment)
	router.GET(baseURL+"/api/v1/payments", wrapper.ListPaymentHistory)
	router.POST(baseURL+"/api/v1/tracking", wrapper.AddTrackingUpdate)
	router.GET(baseURL+"/api/v1/tracking", wrapper.ListTracking)
	router.POST(baseURL+"/api/v1/riders", wrapper.ApplyRider)
	router.GET(baseURL+"/api/v1/riders", wrapper.ListRiders)
	router.GET(baseURL+"/api/v1/riders/active", wrapper.ListActiveRiders)
	router.GET(baseURL+"/api/v1/riders/deliveries", wrapper.ListPendingDeliveries)
	router.PATCH(baseURL+"/api/v1/riders/:riderId/review", wrapper.ReviewRider)
	router.POST(baseURL+"/api/v1/riders/cashout", wrapper.Cashout)
	router.GET(baseURL+"/api/v1/riders/cashouts", wrapper.ListCashouts)
}
