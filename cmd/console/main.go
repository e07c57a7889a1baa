package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/api"
	"github.com/crmdesk/admin-console/internal/core/ports"
	"github.com/crmdesk/admin-console/internal/core/service"
	"github.com/crmdesk/admin-console/internal/infrastructure/apiclient"
	"github.com/crmdesk/admin-console/internal/infrastructure/db/memory"
	mongostore "github.com/crmdesk/admin-console/internal/infrastructure/db/mongo"
	redisstore "github.com/crmdesk/admin-console/internal/infrastructure/db/redis"
	opshttp "github.com/crmdesk/admin-console/internal/infrastructure/http"
	"github.com/crmdesk/admin-console/internal/infrastructure/http/handlers"
	"github.com/crmdesk/admin-console/internal/infrastructure/navigation"
	"github.com/crmdesk/admin-console/internal/infrastructure/queue"
	"github.com/crmdesk/admin-console/internal/pkg/config"
	"github.com/crmdesk/admin-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	storage, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	sessions := service.NewSessionStore(storage, cfg.Storage.Prefix, logger.Component("session"))
	nav := navigation.NewRouter(cfg.Routes.LoginPath, logger.Component("navigation"))

	client, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		LoginPath: cfg.Routes.LoginPath,
	}, sessions, nav, logger.Component("apiclient"))
	if err != nil {
		return err
	}

	authService := service.NewAuthService(client, sessions, nav, cfg.Routes.LoginPath, logger.Component("auth"))
	leadService := service.NewLeadService(client, logger.Component("leads"))
	staffService := service.NewStaffService(client, logger.Component("staff"))
	guard := service.NewRouteGuard(sessions, cfg.Routes.LoginPath, cfg.Routes.ForbiddenPath, logger.Component("guard"))

	importer := queue.NewDispatcher(cfg.ImportWorkers, leadService, logger.Component("import"))
	importer.Start(ctx)

	console := api.NewRouter(api.Deps{
		Auth:          authService,
		Leads:         leadService,
		Staff:         staffService,
		Importer:      importer,
		Guard:         guard,
		Navigator:     nav,
		LoginPath:     cfg.Routes.LoginPath,
		ForbiddenPath: cfg.Routes.ForbiddenPath,
		Log:           log,
		Registerer:    prometheus.DefaultRegisterer,
	})
	ops := opshttp.NewRouter(map[string]handlers.Pinger{
		"storage": storage,
	})

	errCh := make(chan error, 2)
	go serve(console, ":"+cfg.Port, "console", log, errCh)
	go serve(ops, ":"+cfg.OpsPort, "ops", log, errCh)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		console.Shutdown(shutdownCtx),
		ops.Shutdown(shutdownCtx),
	)
}

func serve(e *echo.Echo, addr, name string, log zerolog.Logger, errCh chan<- error) {
	log.Info().Str("server", name).Str("address", addr).Msg("server started")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- fmt.Errorf("%s server: %w", name, err)
	}
}

// openStorage connects the client storage selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.ClientStorage, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session storage: redis")
		return redisstore.NewStorage(client), func() { _ = client.Close() }, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		storage := mongostore.NewStorage(db)
		if err := storage.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("session storage: mongo")
		return storage, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		log.Info().Msg("session storage: memory")
		return memory.NewStorage(), func() {}, nil
	}
}
