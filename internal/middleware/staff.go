package middleware

import (
	"slices"
	"strings"

	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// StaffGuard decides whether the authenticated principal is staff. The
// account must be able to log in, and then either:
// 1. carry the is_staff / is_superuser flag, or
// 2. have a confirmed email listed in ADMIN_EMAILS
type StaffGuard struct {
	users  repository.UserRepository
	emails []string
}

func NewStaffGuard(users repository.UserRepository, cfg *config.Config) *StaffGuard {
	return &StaffGuard{users: users, emails: parseCSV(cfg.AdminEmails)}
}

// IsStaff must run after JWTProtected. Token claims are a snapshot, so the
// decision is always made against the stored account.
func (g *StaffGuard) IsStaff(c *fiber.Ctx) bool {
	userID, err := UserID(c)
	if err != nil {
		return false
	}
	user, err := g.users.FindByID(c.UserContext(), userID)
	if err != nil || !user.CanLogin() {
		return false
	}

	if user.IsAdmin() {
		return true
	}
	// registration is public, so an unconfirmed address proves nothing
	return user.IsEmailConfirmed && slices.Contains(g.emails, strings.ToLower(user.Email))
}

// Required rejects non-staff principals with 403.
func (g *StaffGuard) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.IsStaff(c) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Code: "permission_denied", Message: "Staff access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
