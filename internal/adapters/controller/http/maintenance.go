package http

import (
	"github.com/gofiber/fiber/v2"
)

// runSweep triggers the membership maintenance pass on demand. The scheduler
// runs the same sweep daily; this endpoint exists for operators.
func (h *Handler) runSweep(c *fiber.Ctx) error {
	report := h.memberships.Sweep(c.Context())
	return ok(c, report)
}
