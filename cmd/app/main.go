package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelflow/api"
	"parcelflow/cmd"
	httpin "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/generated/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	if err = run(configs, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

// run returns startup failures instead of exiting so deferred cleanup runs.
func run(configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer app.Close()

	e, err := buildRouter(app, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	return serve(e, configs.HTTPPort, logger)
}

func buildRouter(app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Spec()
	if err != nil {
		return nil, fmt.Errorf("failed to load API contract: %w", err)
	}
	if err = docs.Register(doc); err != nil {
		return nil, fmt.Errorf("failed to register API docs: %w", err)
	}

	authorizer, err := app.CreateAuthorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer: %w", err)
	}

	server := httpin.NewServer(app.CreateHTTPHandlers(), logger.With("component", "http"))
	e, err := httpin.NewRouter(server, authorizer, doc, logger.With("component", "http"))
	if err != nil {
		return nil, fmt.Errorf("failed to build router: %w", err)
	}
	return e, nil
}

// serve runs the server until a termination signal arrives or the listener fails.
func serve(e *echo.Echo, port string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startErr := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case err := <-startErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	return nil
}
