package middleware

import (
	"errors"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected accepts only unexpired HS256 access tokens. Refresh tokens
// are rejected even though they carry a valid signature.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		Claims:     &auth.Claims{},
		ContextKey: tokenContextKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, err := Claims(c)
			if err != nil || claims.TokenType != auth.TokenTypeAccess || claims.ExpiresAt == nil {
				return unauthorized(c, "invalid_token", "Token is invalid or expired")
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(c, "not_authenticated", "Authentication credentials were not provided")
			}
			return unauthorized(c, "invalid_token", "Token is invalid or expired")
		},
	})
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Code: code, Message: message,
	})
}
