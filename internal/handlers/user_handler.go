package handlers

import (
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/middleware"
	"github.com/accountkit/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
	staff       *middleware.StaffGuard
}

func NewUserHandler(userService *services.UserService, staff *middleware.StaffGuard) *UserHandler {
	return &UserHandler{userService: userService, staff: staff}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Register(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	users, total, err := h.userService.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]dto.UserListItem, len(users))
	for i := range users {
		items[i] = dto.NewUserListItem(&users[i])
	}
	return c.JSON(dto.ListResponse[dto.UserListItem]{
		Results: items, Total: total, Limit: limit, Offset: offset,
	})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	user, err := h.userService.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) DeactivateMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.DeactivateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.Deactivate(c.UserContext(), userID, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get returns a profile to its owner or to staff. Anyone else gets 404.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	callerID, err := middleware.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if id != callerID && !h.staff.IsStaff(c) {
		return fiber.ErrNotFound
	}

	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
