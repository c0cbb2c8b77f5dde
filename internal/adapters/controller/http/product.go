package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func (h *Handler) createProduct(c *fiber.Ctx) error {
	var product entity.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "malformed request body"))
	}
	createdProduct, err := h.products.Create(c.Context(), &product)
	if err != nil {
		return fail(c, err)
	}
	return created(c, createdProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.products.GetAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}
