package handlers

import (
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ControlHandler struct {
	controlService *services.ControlService
}

func NewControlHandler(controlService *services.ControlService) *ControlHandler {
	return &ControlHandler{controlService: controlService}
}

func (h *ControlHandler) CreateResetPassword(c *fiber.Ctx) error {
	var req dto.ControlRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.controlService.CreateResetPassword(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *ControlHandler) ListResetPassword(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	records, total, err := h.controlService.ListResetPassword(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[models.ResetPasswordControl]{
		Results: records, Total: total, Limit: limit, Offset: offset,
	})
}

func (h *ControlHandler) GetResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	record, err := h.controlService.GetResetPassword(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}

func (h *ControlHandler) CreateEmailConfirmation(c *fiber.Ctx) error {
	var req dto.ControlRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.controlService.CreateEmailConfirmation(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *ControlHandler) ListEmailConfirmation(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	records, total, err := h.controlService.ListEmailConfirmation(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[models.EmailConfirmationControl]{
		Results: records, Total: total, Limit: limit, Offset: offset,
	})
}

func (h *ControlHandler) GetEmailConfirmation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	record, err := h.controlService.GetEmailConfirmation(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}
