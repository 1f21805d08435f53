package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parcelflow/api"
	httpin "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/generated/servers"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	adminToken  = "Bearer admin"
	senderToken = "Bearer sender"
	riderToken  = "Bearer rider"
)

type handlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f handlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, token string) (ports.Caller, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.Caller), args.Error(1)
}

func newAuthorizer() *MockAuthorizer {
	auth := &MockAuthorizer{}
	auth.On("Authorize", mock.Anything, adminToken).
		Return(ports.Caller{Email: "admin@example.com", IsAdmin: true}, nil)
	auth.On("Authorize", mock.Anything, senderToken).
		Return(ports.Caller{Email: "sender@example.com"}, nil)
	auth.On("Authorize", mock.Anything, riderToken).
		Return(ports.Caller{Email: "rider@example.com"}, nil)
	return auth
}

func newRouter(t *testing.T, handlers httpin.Handlers, auth ports.Authorizer) *echo.Echo {
	t.Helper()
	doc, err := api.Spec()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := httpin.NewRouter(httpin.NewServer(handlers, logger), auth, doc, logger)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func riderParcel() handlerFunc[queries.GetParcelQuery, queries.ParcelView] {
	return func(_ context.Context, q queries.GetParcelQuery) (queries.ParcelView, error) {
		return queries.ParcelView{
			ID:                 q.ParcelID().Bytes(),
			CreatedBy:          "sender@example.com",
			AssignedRiderEmail: "rider@example.com",
		}, nil
	}
}

func TestRouter_HealthAndAuthentication(t *testing.T) {
	auth := newAuthorizer()
	auth.On("Authorize", mock.Anything, "Bearer expired").
		Return(ports.Caller{}, errs.NewValueIsInvalidError("token"))
	auth.On("Authorize", mock.Anything, "Bearer outage").
		Return(ports.Caller{}, errs.NewStoreUnavailableError("get user", nil))
	e := newRouter(t, httpin.Handlers{}, auth)

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/parcels", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/parcels", "Bearer expired", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/parcels", "Bearer outage", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_CreateParcel(t *testing.T) {
	var received commands.CreateParcelCommand
	parcelID := kernel.NewUUID()
	handlers := httpin.Handlers{
		CreateParcel: handlerFunc[commands.CreateParcelCommand, commands.CreateParcelResult](
			func(_ context.Context, cmd commands.CreateParcelCommand) (commands.CreateParcelResult, error) {
				received = cmd
				return commands.CreateParcelResult{ParcelID: parcelID, TrackingID: "PCL-1"}, nil
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())

	t.Run("should create parcel owned by the caller", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/parcels", senderToken,
			`{"senderRegion":"Dhaka","receiverRegion":"Dhaka","cost":"100"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body servers.ParcelCreated
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, parcelID.String(), body.Id)
		assert.Equal(t, "PCL-1", body.TrackingId)
		assert.Equal(t, "sender@example.com", received.CreatedBy().String())
	})

	t.Run("should reject body that breaks the contract", func(t *testing.T) {
		received = commands.CreateParcelCommand{}

		rec := do(e, http.MethodPost, "/api/v1/parcels", senderToken, `{"senderRegion":"Dhaka"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Error(t, received.Validate())
	})

	t.Run("should map domain validation to bad request", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/parcels", senderToken,
			`{"senderRegion":"Dhaka","receiverRegion":"Dhaka","cost":"-5"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AdvanceParcelStatus(t *testing.T) {
	earning, err := kernel.MoneyFromString("80")
	require.NoError(t, err)
	parcelID := kernel.NewUUID().String()

	calls := 0
	handlers := httpin.Handlers{
		GetParcel: riderParcel(),
		AdvanceStatus: handlerFunc[commands.AdvanceStatusCommand, commands.AdvanceStatusResult](
			func(context.Context, commands.AdvanceStatusCommand) (commands.AdvanceStatusResult, error) {
				calls++
				return commands.AdvanceStatusResult{
					Changed:       true,
					Status:        parcel.Delivered,
					Earning:       &earning,
					RiderReleased: true,
				}, nil
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())
	path := "/api/v1/parcels/" + parcelID + "/status"

	rec := do(e, http.MethodPatch, path, senderToken, `{"status":"delivered"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls)

	rec = do(e, http.MethodPatch, path, riderToken, `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body servers.StatusChanged
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "delivered", body.Status)
	require.NotNil(t, body.EarningAmount)
	assert.Equal(t, "80.00", *body.EarningAmount)
	assert.True(t, body.RiderReleased)

	rec = do(e, http.MethodPatch, path, adminToken, `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestServer_ErrorMapping(t *testing.T) {
	parcelID := kernel.NewUUID().String()
	riderID := kernel.NewUUID().String()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errs.NewObjectNotFoundError("parcelID", parcelID), http.StatusNotFound},
		{"conflict", errs.NewVersionIsInvalidError("parcel"), http.StatusConflict},
		{"transition", errs.NewInvalidTransitionError("parcel", "delivered", "in_transit"), http.StatusConflict},
		{"inactive rider", errs.NewValueIsInvalidError("rider is not active"), http.StatusBadRequest},
		{"store", errs.NewStoreUnavailableError("update parcel", nil), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := httpin.Handlers{
				AssignRider: handlerFunc[commands.AssignRiderCommand, commands.AssignmentResult](
					func(context.Context, commands.AssignRiderCommand) (commands.AssignmentResult, error) {
						return commands.AssignmentResult{}, tt.err
					}),
			}
			e := newRouter(t, handlers, newAuthorizer())

			rec := do(e, http.MethodPatch, "/api/v1/parcels/"+parcelID+"/assign", adminToken,
				`{"riderId":"`+riderID+`","riderEmail":"rider@example.com"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, decodeError(t, rec).Code)
		})
	}

	t.Run("partial failure reports the failed step", func(t *testing.T) {
		handlers := httpin.Handlers{
			AssignRider: handlerFunc[commands.AssignRiderCommand, commands.AssignmentResult](
				func(context.Context, commands.AssignRiderCommand) (commands.AssignmentResult, error) {
					return commands.AssignmentResult{ParcelUpdated: true}, errs.NewPartialFailureError(
						"assign rider", "rider_update", []string{"parcel_update"}, []string{parcelID, riderID},
						errs.NewStoreUnavailableError("update rider", nil))
				}),
		}
		e := newRouter(t, handlers, newAuthorizer())

		rec := do(e, http.MethodPatch, "/api/v1/parcels/"+parcelID+"/assign", adminToken,
			`{"riderId":"`+riderID+`","riderEmail":"rider@example.com"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		require.NotNil(t, body.Step)
		assert.Equal(t, "rider_update", *body.Step)
		assert.Equal(t, []string{"parcel_update"}, body.Completed)
		assert.Equal(t, []string{parcelID, riderID}, body.Ids)
	})

	t.Run("assignment is admin only", func(t *testing.T) {
		e := newRouter(t, httpin.Handlers{}, newAuthorizer())

		rec := do(e, http.MethodPatch, "/api/v1/parcels/"+parcelID+"/assign", riderToken,
			`{"riderId":"`+riderID+`","riderEmail":"rider@example.com"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestServer_Cashout(t *testing.T) {
	total, err := kernel.MoneyFromString("110")
	require.NoError(t, err)
	batchID := kernel.NewUUID()
	settled := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	var settledFor string
	nothingDue := false
	handlers := httpin.Handlers{
		Cashout: handlerFunc[commands.CashoutCommand, commands.CashoutResult](
			func(_ context.Context, cmd commands.CashoutCommand) (commands.CashoutResult, error) {
				settledFor = cmd.RiderEmail().String()
				if nothingDue {
					return commands.CashoutResult{}, commands.ErrNothingToSettle
				}
				return commands.CashoutResult{
					BatchID:      batchID,
					ParcelIDs:    settled,
					TotalEarning: total,
					CashedOutAt:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
				}, nil
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())

	t.Run("should settle the caller", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/riders/cashout", riderToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body servers.CashoutResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Settled)
		require.NotNil(t, body.BatchId)
		assert.Equal(t, batchID.String(), *body.BatchId)
		require.NotNil(t, body.TotalEarning)
		assert.Equal(t, "110.00", *body.TotalEarning)
		assert.Equal(t, "rider@example.com", settledFor)
	})

	t.Run("should report nothing to settle as success", func(t *testing.T) {
		nothingDue = true
		defer func() { nothingDue = false }()

		rec := do(e, http.MethodPost, "/api/v1/riders/cashout", riderToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"settled":0}`, rec.Body.String())
	})

	t.Run("should let admins settle any rider", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/riders/cashout", adminToken, `{"riderEmail":"Other@Example.com"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "other@example.com", settledFor)
	})

	t.Run("should refuse settling someone else", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/riders/cashout", senderToken, `{"riderEmail":"rider@example.com"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestServer_ListParcels(t *testing.T) {
	var filter queries.ParcelFilter
	handlers := httpin.Handlers{
		ListParcels: handlerFunc[queries.ListParcelsQuery, []queries.ParcelView](
			func(_ context.Context, q queries.ListParcelsQuery) ([]queries.ParcelView, error) {
				filter = q.Filter()
				return []queries.ParcelView{}, nil
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())

	rec := do(e, http.MethodGet, "/api/v1/parcels?status=delivered", senderToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sender@example.com", filter.CreatedBy)
	assert.Equal(t, "delivered", filter.Status)
	assert.Equal(t, 100, filter.Limit)

	rec = do(e, http.MethodGet, "/api/v1/parcels?createdBy=other@example.com", senderToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/parcels?limit=1000", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/parcels?createdBy=other@example.com&limit=5", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "other@example.com", filter.CreatedBy)
	assert.Equal(t, 5, filter.Limit)
}

func TestServer_RiderQueries(t *testing.T) {
	var ridersQuery queries.ListRidersQuery
	var deliveriesFor string
	handlers := httpin.Handlers{
		ListRiders: handlerFunc[queries.ListRidersQuery, []queries.RiderView](
			func(_ context.Context, q queries.ListRidersQuery) ([]queries.RiderView, error) {
				ridersQuery = q
				return []queries.RiderView{{Email: "rider@example.com", Status: "active"}}, nil
			}),
		PendingDeliveries: handlerFunc[queries.PendingDeliveriesQuery, []queries.ParcelView](
			func(_ context.Context, q queries.PendingDeliveriesQuery) ([]queries.ParcelView, error) {
				deliveriesFor = q.RiderEmail()
				return []queries.ParcelView{}, nil
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())

	rec := do(e, http.MethodGet, "/api/v1/riders/active?region=Dhaka", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", ridersQuery.Status().String())
	assert.Equal(t, "Dhaka", ridersQuery.Region())

	rec = do(e, http.MethodGet, "/api/v1/riders/active", riderToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/riders/deliveries", riderToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rider@example.com", deliveriesFor)

	rec = do(e, http.MethodGet, "/api/v1/riders/deliveries?riderEmail=rider@example.com", senderToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_GetUserRole(t *testing.T) {
	handlers := httpin.Handlers{
		GetUserRole: handlerFunc[queries.GetUserRoleQuery, string](
			func(_ context.Context, q queries.GetUserRoleQuery) (string, error) {
				if q.Email().String() == "sender@example.com" {
					return "user", nil
				}
				return "", errs.NewObjectNotFoundError("email", q.Email().String())
			}),
	}
	e := newRouter(t, handlers, newAuthorizer())

	rec := do(e, http.MethodGet, "/api/v1/users/sender@example.com/role", senderToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"user"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/users/ghost@example.com/role", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/users/admin@example.com/role", senderToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
