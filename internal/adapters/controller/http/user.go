package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func (h *Handler) createUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.users.Create(c.Context(), &entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, user)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *Handler) validateUser(c *fiber.Ctx) error {
	var req dto.ValidateUserRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.users.Validate(c.Context(), c.Params("id"), req.Code)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *Handler) resendValidationCode(c *fiber.Ctx) error {
	if err := h.users.SendValidationCode(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) createBadge(c *fiber.Ctx) error {
	var badge entity.SkillBadge
	if err := c.BodyParser(&badge); err != nil {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "malformed request body"))
	}
	createdBadge, err := h.badges.Create(c.Context(), &badge)
	if err != nil {
		return fail(c, err)
	}
	return created(c, createdBadge)
}

func (h *Handler) listBadges(c *fiber.Ctx) error {
	badges, err := h.badges.GetAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, badges)
}

func (h *Handler) grantBadge(c *fiber.Ctx) error {
	if err := h.badges.Grant(c.Context(), c.Params("id"), c.Params("badgeId")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) revokeBadge(c *fiber.Ctx) error {
	if err := h.badges.Revoke(c.Context(), c.Params("id"), c.Params("badgeId")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
