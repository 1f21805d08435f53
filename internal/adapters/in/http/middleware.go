package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"parcelflow/internal/core/ports"
	"parcelflow/internal/generated/servers"
	"parcelflow/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const callerKey = "parcelflow.caller"

// publicPath reports whether a request needs no bearer token.
func publicPath(ctx echo.Context) bool {
	path := ctx.Request().URL.Path
	return path == "/health" || strings.HasPrefix(path, "/swagger")
}

// Authenticate resolves the bearer token into a ports.Caller. Store outages
// during the role lookup surface as 503 so clients can retry.
func Authenticate(authorizer ports.Authorizer, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = publicPath
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if skipper(ctx) {
				return next(ctx)
			}

			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(header) == "" {
				return unauthorized(ctx, errUnauthorized)
			}

			caller, err := authorizer.Authorize(ctx.Request().Context(), header)
			if err != nil {
				if errors.Is(err, errs.ErrStoreUnavailable) {
					return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
						Code:    http.StatusServiceUnavailable,
						Message: http.StatusText(http.StatusServiceUnavailable),
					})
				}
				return unauthorized(ctx, err)
			}

			ctx.Set(callerKey, caller)
			return next(ctx)
		}
	}
}

func unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}

// ValidateRequests checks every request that matches an operation of doc
// against its parameters and body schema. Unknown routes fall through to
// echo's own 404 and 405 handling.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return badRequest(ctx, validateErr.Error())
			}
			return next(ctx)
		}
	}, nil
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(ctx.Request().Context(), slog.LevelInfo, "http request", attrs...)
			return nil
		},
	})
}

func callerFrom(ctx echo.Context) ports.Caller {
	caller, _ := ctx.Get(callerKey).(ports.Caller)
	return caller
}

func requireAdmin(ctx echo.Context) error {
	if !callerFrom(ctx).IsAdmin {
		return errForbidden
	}
	return nil
}

// requireSelfOrAdmin allows admins and the owner of email.
func requireSelfOrAdmin(ctx echo.Context, email string) error {
	caller := callerFrom(ctx)
	if caller.IsAdmin || sameEmail(caller.Email, email) {
		return nil
	}
	return errForbidden
}

func sameEmail(a, b string) bool {
	a = strings.TrimSpace(a)
	return a != "" && strings.EqualFold(a, strings.TrimSpace(b))
}
