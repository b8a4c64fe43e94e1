package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid_credentials"},
	{services.ErrInvalidToken, fiber.StatusUnauthorized, "invalid_token"},
	{services.ErrDuplicateDevice, fiber.StatusConflict, "duplicate_device"},
	{services.ErrEmailTaken, fiber.StatusConflict, "conflict"},
	{services.ErrUsernameTaken, fiber.StatusConflict, "conflict"},
	{services.ErrPhoneTaken, fiber.StatusConflict, "conflict"},
	{services.ErrUserConflict, fiber.StatusConflict, "conflict"},
	{services.ErrDeviceNotFound, fiber.StatusNotFound, "not_found"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "not_found"},
	{services.ErrRecordNotFound, fiber.StatusNotFound, "not_found"},
	{services.ErrValidation, fiber.StatusBadRequest, "validation_error"},
}

// respondError maps service errors onto a status and a stable code. Anything
// unmapped is logged and hidden behind a 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{
				Error: true, Code: m.code, Message: message(err, m.target),
			})
		}
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: "internal_error", Message: "Internal server error",
	})
}

// message keeps validation details but never leaks wrapped storage errors.
func message(err, target error) string {
	if errors.Is(target, services.ErrValidation) {
		return err.Error()
	}
	return target.Error()
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: "validation_error", Message: msg,
	})
}

// ErrorHandler is the app-level Fiber error handler. It formats *fiber.Error
// with the same envelope and codes as respondError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		status = e.Code
		msg = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if status >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err.Error(),
		)
		msg = "Internal server error"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Code: statusCode(status), Message: msg,
	})
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "validation_error"
	case fiber.StatusUnauthorized:
		return "not_authenticated"
	case fiber.StatusForbidden:
		return "permission_denied"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "request_too_large"
	case fiber.StatusTooManyRequests:
		return "throttled"
	}
	if status >= fiber.StatusInternalServerError {
		return "internal_error"
	}
	return "error"
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// pagination reads limit/offset query params, clamping limit to maxPageSize.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
