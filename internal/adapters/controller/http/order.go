package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func (h *Handler) createOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	order, err := h.orders.Create(c.Context(), req.UserID, req.Items)
	if err != nil {
		return fail(c, err)
	}
	return created(c, order)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

func (h *Handler) listUserOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	orders, err := h.orders.GetByUserID(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, orders)
}

func (h *Handler) progressOrder(c *fiber.Ctx) error {
	var req dto.ProgressOrderRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.orders.Progress(c.Context(), c.Params("id"), entity.OrderStatus(req.Status)); err != nil {
		return fail(c, err)
	}
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
