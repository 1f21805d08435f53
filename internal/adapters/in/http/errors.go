package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"parcelflow/internal/generated/servers"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	errForbidden    = errors.New("access denied")
	errUnauthorized = errors.New("missing or invalid credentials")
)

// statusOf maps the error taxonomy of the core onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrPartialFailure):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	body := servers.Error{Code: status, Message: err.Error()}

	var partial *errs.PartialFailureError
	if errors.As(err, &partial) {
		step := partial.Step
		body.Step = &step
		body.Completed = partial.Completed
		body.Ids = partial.IDs
		body.Message = fmt.Sprintf("%s stopped at %s", partial.Operation, partial.Step)
	} else if status >= http.StatusInternalServerError {
		body.Message = http.StatusText(status)
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Int("status", status),
			slog.Any("error", err))
	}
	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
