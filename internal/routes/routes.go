package routes

import (
	"time"

	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/handlers"
	"github.com/accountkit/account-service/internal/metrics"
	"github.com/accountkit/account-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	staff *middleware.StaffGuard,
	collector *metrics.Collector,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	deviceHandler *handlers.DeviceHandler,
	controlHandler *handlers.ControlHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/", healthHandler.Home)
	if collector != nil {
		app.Get("/metrics", collector.Handler())
	}

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	if cfg.RateLimit > 0 {
		api.Use(rateLimiter(cfg.RateLimit))
	}

	api.Get("/health", healthHandler.Check)

	access := api.Group("/access")

	// Token endpoints get a stricter limit: 10 req/min per IP
	auth := access.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(rateLimiter(cfg.AuthRateLimit))
	}
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so registration stays public
	jwt := middleware.JWTProtected(cfg)
	staffOnly := staff.Required()

	access.Post("/users", userHandler.Register)
	access.Get("/users", jwt, staffOnly, userHandler.List)
	access.Get("/users/me", jwt, userHandler.Me)
	access.Put("/users/me", jwt, userHandler.UpdateMe)
	access.Patch("/users/me", jwt, userHandler.UpdateMe)
	access.Delete("/users/me", jwt, userHandler.DeactivateMe)
	access.Get("/users/:id", jwt, userHandler.Get)
	access.Delete("/users/:id", jwt, staffOnly, userHandler.Delete)

	devices := access.Group("/logged-devices", jwt)
	devices.Get("/", deviceHandler.List)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/:id", deviceHandler.Get)
	devices.Delete("/:id", deviceHandler.Delete)
	devices.Post("/:id/update_login", deviceHandler.UpdateLogin)

	resets := access.Group("/reset-password-control", jwt)
	resets.Post("/", controlHandler.CreateResetPassword)
	resets.Get("/", staffOnly, controlHandler.ListResetPassword)
	resets.Get("/:id", staffOnly, controlHandler.GetResetPassword)

	confirmations := access.Group("/email-confirmation-control", jwt)
	confirmations.Post("/", controlHandler.CreateEmailConfirmation)
	confirmations.Get("/", staffOnly, controlHandler.ListEmailConfirmation)
	confirmations.Get("/:id", staffOnly, controlHandler.GetEmailConfirmation)
}

func rateLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
