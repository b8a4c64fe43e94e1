package handlers

import (
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/middleware"
	"github.com/accountkit/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DeviceHandler serves /logged-devices. Every operation acts on the caller's
// own devices; a device owned by someone else is reported as not found.
type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

func (h *DeviceHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	devices, err := h.deviceService.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewDeviceList(devices))
}

func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDeviceResponse(device))
}

func (h *DeviceHandler) Get(c *fiber.Ctx) error {
	userID, deviceID, err := h.ids(c)
	if err != nil {
		return err
	}

	device, err := h.deviceService.Get(c.UserContext(), userID, deviceID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewDeviceResponse(device))
}

func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	userID, deviceID, err := h.ids(c)
	if err != nil {
		return err
	}

	if err := h.deviceService.Delete(c.UserContext(), userID, deviceID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DeviceHandler) UpdateLogin(c *fiber.Ctx) error {
	userID, deviceID, err := h.ids(c)
	if err != nil {
		return err
	}

	if _, err := h.deviceService.RefreshLogin(c.UserContext(), userID, deviceID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Login time updated"})
}

// ids resolves the caller and the :id param. A malformed id is reported
// as not found.
func (h *DeviceHandler) ids(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.ErrUnauthorized
	}
	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.ErrNotFound
	}
	return userID, deviceID, nil
}
