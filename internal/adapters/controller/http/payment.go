package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
)

func (h *Handler) initiatePayment(c *fiber.Ctx) error {
	redirect, err := h.payments.InitiatePayment(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"redirectUrl": redirect})
}

func (h *Handler) checkPaymentStatus(c *fiber.Ctx) error {
	status, err := h.payments.CheckStatus(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"status": status})
}

func (h *Handler) listPaymentEvents(c *fiber.Ctx) error {
	events, err := h.payments.History(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, events)
}

// paymentCallback receives provider notifications. The provider only cares
// about the status code; it retries anything but 200, so any processing
// failure answers a plain 500.
func (h *Handler) paymentCallback(c *fiber.Ctx) error {
	var callback dto.PaymentCallback
	if err := c.BodyParser(&callback); err != nil {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "malformed callback body"))
	}
	if callback.OrderReference == "" {
		callback.OrderReference = c.Query("orderReference")
	}
	if err := h.payments.HandleCallback(c.Context(), callback); err != nil {
		h.logger.Errorf("payment callback for order %s failed: %v", callback.OrderReference, err)
		return c.Status(fiber.StatusInternalServerError).JSON(Response{Success: false, Error: err.Error()})
	}
	return ok(c, nil)
}
