package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/database"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func newIssuer() *auth.Issuer {
	return auth.NewIssuer(testSecret, 15*time.Minute, time.Hour)
}

func protectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := protectedApp(cfg)
	issuer := newIssuer()
	userID := uuid.New()

	access, err := issuer.IssueAccess(auth.Identity{UserID: userID, Email: "a@example.com"})
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(auth.Identity{UserID: userID, Email: "a@example.com"})
	require.NoError(t, err)
	foreign, err := auth.NewIssuer("other-secret", time.Minute, time.Hour).IssueAccess(auth.Identity{UserID: userID})
	require.NoError(t, err)
	expired, err := issuer.WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).IssueAccess(auth.Identity{UserID: userID})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"access token", "Bearer " + access, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, fiber.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestStaffGuard(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	staff := &models.User{Email: "staff@example.com", Password: "x", Active: true, IsStaff: true}
	plain := &models.User{Email: "plain@example.com", Password: "x", Active: true}
	listed := &models.User{Email: "boss@example.com", Password: "x", Active: true, IsEmailConfirmed: true}
	unconfirmed := &models.User{Email: "claimed@example.com", Password: "x", Active: true}
	deactivated := &models.User{Email: "gone@example.com", Password: "x", Active: true, IsEmailConfirmed: true, IsDeactivated: true}
	for _, u := range []*models.User{staff, plain, listed, unconfirmed, deactivated} {
		require.NoError(t, users.Insert(ctx, u))
	}

	cfg := &config.Config{
		JWTSecret:   testSecret,
		AdminEmails: " Boss@example.com ,claimed@example.com,gone@example.com",
	}
	guard := NewStaffGuard(users, cfg)

	app := fiber.New()
	app.Get("/staff", JWTProtected(cfg), guard.Required(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	issuer := newIssuer()
	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"db flag", staff, fiber.StatusNoContent},
		{"admin email", listed, fiber.StatusNoContent},
		{"regular user", plain, fiber.StatusForbidden},
		{"admin email not confirmed", unconfirmed, fiber.StatusForbidden},
		{"admin email deactivated", deactivated, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.IssueAccess(auth.Identity{UserID: tt.user.ID, Email: tt.user.Email})
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/staff", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestStaffGuardIgnoresEmailClaim(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	users := repository.NewUserRepository(db)

	plain := &models.User{Email: "plain@example.com", Password: "x", Active: true}
	require.NoError(t, users.Insert(context.Background(), plain))

	cfg := &config.Config{JWTSecret: testSecret, AdminEmails: "boss@example.com"}
	app := fiber.New()
	app.Get("/staff", JWTProtected(cfg), NewStaffGuard(users, cfg).Required(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	token, err := newIssuer().IssueAccess(auth.Identity{UserID: plain.ID, Email: "boss@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
