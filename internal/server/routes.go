package server

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rgehrsitz/evtax/internal/config"
)

// Config holds HTTP server settings
type Config struct {
	AllowOrigins string
	// RateLimit is the number of requests per minute per client; 0 disables it
	RateLimit int
	// AccessLog receives one line per request; nil disables it
	AccessLog io.Writer
}

// DefaultConfig returns default server settings
func DefaultConfig() Config {
	return Config{
		AllowOrigins: "*",
		RateLimit:    config.DefaultRateLimit,
	}
}

// NewApp builds the fiber application with middleware and routes
func NewApp(cfg Config, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "evtax",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + UserHeader,
		AllowMethods: "GET,POST,HEAD",
	}))

	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
			Output: cfg.AccessLog,
		}))
	}

	if cfg.RateLimit > 0 {
		app.Use("/v1", limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return Error(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
			},
		}))
	}

	SetupRoutes(app, h)
	return app
}

// SetupRoutes registers all endpoints
func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)

	v1 := app.Group("/v1")
	v1.Get("/parameters", h.Parameters)
	v1.Post("/solve", h.Solve)
	v1.Post("/compare", h.Compare)
	v1.Post("/break-even", h.BreakEven)
	v1.Get("/stats", h.Stats)
}
