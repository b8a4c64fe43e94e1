package middleware

import (
	"errors"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenContextKey = "user"

// Claims extracts the verified token claims from Fiber context locals.
func Claims(c *fiber.Ctx) (*auth.Claims, error) {
	token, ok := c.Locals(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// UserID extracts the authenticated principal's ID.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := Claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}
