// Package main is the entry point for the payments API.
// It loads configuration, wires the gateway, store and cache,
// and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagos/internal/config"
	"pagos/internal/docs"
	"pagos/internal/handlers"
	"pagos/internal/middleware"
	"pagos/internal/repositories"
	"pagos/internal/repositories/cache"
	"pagos/internal/routes"
	"pagos/internal/services/gateway"
	"pagos/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	db, err := repositories.InitDB(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			logger.Warn("failed to close database connection", "error", err)
		}
	}()

	paymentRepo := repositories.NewPaymentRepository(db)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthCheckFunc{
		"database": paymentRepo.Ping,
	})

	var historyCache payment.HistoryCache = payment.NoopHistoryCache{}
	if cfg.Redis.Enabled() {
		cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.HistoryTTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				logger.Warn("failed to close redis connection", "error", err)
			}
		}()

		// Rows written while this instance was down are not in the cached copy.
		if err := cacheService.InvalidateHistory(context.Background()); err != nil {
			logger.Warn("failed to clear payment history cache", "error", err)
		}
		historyCache = cacheService
		healthHandler.AddCheck("redis", cacheService.HealthCheck)
		healthHandler.AddStats("redis", func() interface{} {
			return cacheService.GetStats()
		})
	}

	cardResolver, err := payment.NewCardResolver(cfg.Payment.CardResolver)
	if err != nil {
		logger.Error("invalid card resolver", "error", err)
		os.Exit(1)
	}

	stripeClient := gateway.NewStripeClient(gateway.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		BaseURL:   cfg.Stripe.BaseURL,
	}, logger)

	paymentService := payment.NewService(
		stripeClient,
		paymentRepo,
		cardResolver,
		historyCache,
		payment.Config{
			Description:     cfg.Payment.Description,
			DefaultCurrency: cfg.Payment.Currency,
			PaymentTypeID:   cfg.Payment.PaymentTypeID,
			UserID:          cfg.Payment.UserID,
			EventID:         cfg.Payment.EventID,
		},
		logger,
	)

	if err := docs.Register(cfg.Server.PublicURL); err != nil {
		logger.Error("failed to build api documentation", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:               "pagos",
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.SetupRoutes(app, paymentService, healthHandler, cfg.Server)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "card_resolver", cfg.Payment.CardResolver)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exited")
}
