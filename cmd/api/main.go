package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caribeway/caribeway-backend/api/routes"
	"github.com/caribeway/caribeway-backend/internal/bookings"
	"github.com/caribeway/caribeway-backend/internal/catalog"
	"github.com/caribeway/caribeway-backend/internal/payments"
	"github.com/caribeway/caribeway-backend/internal/places"
	"github.com/caribeway/caribeway-backend/internal/staff"
	"github.com/caribeway/caribeway-backend/internal/support"
	"github.com/caribeway/caribeway-backend/internal/tracking"
	"github.com/caribeway/caribeway-backend/pkg/auth/session"
	"github.com/caribeway/caribeway-backend/pkg/config"
	"github.com/caribeway/caribeway-backend/pkg/db"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/maps"
	"github.com/caribeway/caribeway-backend/pkg/metrics"
	"github.com/caribeway/caribeway-backend/pkg/migrate"
	"github.com/caribeway/caribeway-backend/pkg/redis"
	"github.com/caribeway/caribeway-backend/pkg/square"
)

const webhookGuardTTL = 48 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staff.ServiceParams{
		Repo:           staff.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	var squareClient *square.Client
	var linkCreator bookings.PaymentLinkCreator
	if cfg.Square.AccessToken != "" {
		squareClient, err = square.NewClient(context.Background(), cfg.Square, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create square client", err)
			os.Exit(1)
		}
		paymentService, err := payments.NewService(squareClient, logg, cfg.Square.RedirectURL)
		if err != nil {
			logg.Error(context.Background(), "failed to create payments service", err)
			os.Exit(1)
		}
		linkCreator = paymentService
	} else {
		logg.Warn(context.Background(), "square access token missing, hosted checkout disabled")
	}

	bookingRepo := bookings.NewRepository(dbClient.DB())
	bookingService, err := bookings.NewService(bookings.ServiceParams{
		Repo:    bookingRepo,
		Items:   catalog.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Links:   linkCreator,
		Logger:  logg,
		HoldTTL: cfg.Bookings.HoldTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	supportService, err := support.NewService(support.ServiceParams{
		Repo:     support.NewRepository(dbClient.DB()),
		Bookings: bookingRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	trackingService, err := tracking.NewService(tracking.ServiceParams{
		Repo:   tracking.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tracking service", err)
		os.Exit(1)
	}

	var placesService places.Service
	if cfg.GoogleMaps.APIKey != "" {
		mapsClient, err := maps.NewClient(cfg.GoogleMaps.APIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create maps client", err)
			os.Exit(1)
		}
		placesService = places.NewService(mapsClient)
	} else {
		logg.Warn(context.Background(), "google maps api key missing, places endpoints disabled")
	}

	webhookHandler, err := payments.NewWebhookHandler(bookingService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook handler", err)
		os.Exit(1)
	}
	webhookGuard, err := payments.NewIdempotencyGuard(redisClient, webhookGuardTTL, "square-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionChecker: sessionManager,
			Metrics:        httpMetrics,
			Staff:          staffService,
			Bookings:       bookingService,
			Catalog:        catalogService,
			Support:        supportService,
			Tracking:       trackingService,
			Places:         placesService,
			SquareClient:   squareClient,
			WebhookHandler: webhookHandler,
			WebhookGuard:   webhookGuard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
