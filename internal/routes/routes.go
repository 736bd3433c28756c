// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"pagos/internal/config"
	apperrors "pagos/internal/errors"
	"pagos/internal/handlers"
	"pagos/internal/services/payment"
	"pagos/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes registers the payment, documentation and health routes.
func SetupRoutes(app *fiber.App, paymentService payment.Service, healthHandler *handlers.HealthHandler, cfg config.ServerConfig) {
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	app.Get("/", handlers.Root)
	app.Get("/docs", handlers.Docs)
	app.Get("/health", healthHandler.HealthCheck)

	if cfg.RateLimitMax > 0 {
		app.Use("/pago", newLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
		app.Use("/confirmarpago", newLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	app.Post("/pago", paymentHandler.CreatePayment)
	app.Post("/confirmarpago", paymentHandler.ConfirmPayment)
	app.Get("/historialpagos", paymentHandler.ListPayments)
}

func newLimiter(max int, window time.Duration) fiber.Handler {
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, apperrors.CodeRateLimited, "Too many requests. Please try again later.")
		},
	})
}
