package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data})
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(Response{Success: false, Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes. Anything unmapped is
// an internal error.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, errorz.NotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errorz.EmptyOrder),
		errors.Is(err, errorz.InvalidTransition),
		errors.Is(err, errorz.InvalidStatus),
		errors.Is(err, errorz.InvalidCode):
		return fiber.StatusBadRequest
	case errors.Is(err, errorz.Unqualified),
		errors.Is(err, errorz.NotAssignee),
		errors.Is(err, errorz.NotReviewer):
		return fiber.StatusForbidden
	case errors.Is(err, errorz.OutOfStock),
		errors.Is(err, errorz.SoldOut),
		errors.Is(err, errorz.EventOver),
		errors.Is(err, errorz.AlreadyParticipant),
		errors.Is(err, errorz.AlreadyAssigned),
		errors.Is(err, errorz.PaymentNotInitiated):
		return fiber.StatusConflict
	case errors.Is(err, errorz.PaymentRequest):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
