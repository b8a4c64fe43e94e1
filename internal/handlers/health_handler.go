package handlers

import (
	"time"

	"github.com/accountkit/account-service/internal/database"
	"github.com/accountkit/account-service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const serviceName = "account-service"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status, dbStatus, code := "ok", "ok", fiber.StatusOK
	if err := database.Ping(h.db); err != nil {
		status, dbStatus, code = "degraded", "unhealthy: "+err.Error(), fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

// Home describes the service and where its endpoints live.
func (h *HealthHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": serviceName,
		"endpoints": fiber.Map{
			"access":  "/api/access",
			"health":  "/api/health",
			"metrics": "/metrics",
		},
	})
}
