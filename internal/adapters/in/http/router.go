package http

import (
	"log/slog"
	"net/http"

	"parcelflow/internal/core/ports"
	"parcelflow/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the server, its middleware chain and the operational
// endpoints into an echo instance.
func NewRouter(
	server *Server,
	authorizer ports.Authorizer,
	doc *openapi3.T,
	logger *slog.Logger,
) (*echo.Echo, error) {
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Authenticate(authorizer, nil))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validate)
	servers.RegisterHandlers(api, server)

	return e, nil
}
