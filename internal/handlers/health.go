package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheckFunc reports whether one dependency is reachable.
type HealthCheckFunc func(ctx context.Context) error

// HealthStatsFunc returns counters reported next to a dependency's status.
type HealthStatsFunc func() interface{}

type HealthHandler struct {
	checks  map[string]HealthCheckFunc
	stats   map[string]HealthStatsFunc
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheckFunc) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		stats:   map[string]HealthStatsFunc{},
		timeout: 2 * time.Second,
	}
}

// AddCheck registers one more dependency check.
func (h *HealthHandler) AddCheck(name string, check HealthCheckFunc) {
	if h.checks == nil {
		h.checks = map[string]HealthCheckFunc{}
	}
	h.checks[name] = check
}

// AddStats reports fn's result under "stats" in every health response.
func (h *HealthHandler) AddStats(name string, fn HealthStatsFunc) {
	h.stats[name] = fn
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	body := fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	}
	if len(h.stats) > 0 {
		stats := fiber.Map{}
		for name, fn := range h.stats {
			stats[name] = fn()
		}
		body["stats"] = stats
	}

	return c.Status(code).JSON(body)
}

func Root(c *fiber.Ctx) error {
	return c.SendString("Api de Digital Event Hub")
}
