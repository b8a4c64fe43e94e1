package middleware

import (
	"github.com/accountkit/account-service/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows browser clients from CORS_ORIGINS. Bearer tokens travel in the
// Authorization header, so cookies are never needed.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        600,
	})
}
