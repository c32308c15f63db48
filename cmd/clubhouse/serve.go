package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rangerclubhouse/clubhouse/internal/app"
	"github.com/rangerclubhouse/clubhouse/internal/auth"
	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/observability"
	"github.com/rangerclubhouse/clubhouse/internal/person"
	"github.com/rangerclubhouse/clubhouse/internal/personevent"
	"github.com/rangerclubhouse/clubhouse/internal/platform/cache"
	"github.com/rangerclubhouse/clubhouse/internal/platform/db"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/roles"
	"github.com/rangerclubhouse/clubhouse/internal/timesheet"
	"github.com/rangerclubhouse/clubhouse/internal/vehicle"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.InTestMode() {
				slog.Default().Info("test mode detected, skipping runtime startup")
				return nil
			}
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	codec := restapi.NewCodec(
		filters.DefaultRegistry(),
		restapi.WithObserver(observability.NewFilterObserver(metrics, logger)),
		restapi.WithLocation(cfg.Location()),
	)

	rolesRepo := roles.NewRepository(pool)
	roleCache := roles.NewCache(rolesRepo, redisClient, cfg.RoleCacheTTL, logger)
	if err := roleCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("role invalidation listener", slog.Any("error", err))
	}
	rolesService := roles.NewService(rolesRepo, roleCache, logger)

	authService := auth.NewService(
		auth.NewRepository(pool),
		roleCache,
		auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL),
		auth.NewRevocations(redisClient),
		logger,
	)

	personService := person.NewService(person.NewRepository(pool), roleCache, codec, logger)
	personEventService := personevent.NewService(personevent.NewRepository(pool), codec, logger)
	vehicleService := vehicle.NewService(vehicle.NewRepository(pool), personEventService, codec, logger)
	timesheetService := timesheet.NewService(timesheet.NewRepository(pool), codec, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthService:        authService,
		AuthHandler:        auth.NewHandler(logger, authService),
		PersonHandler:      person.NewHandler(logger, personService),
		RolesHandler:       roles.NewHandler(logger, rolesService),
		PersonEventHandler: personevent.NewHandler(logger, personEventService),
		VehicleHandler:     vehicle.NewHandler(logger, vehicleService),
		TimesheetHandler:   timesheet.NewHandler(logger, timesheetService),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
