// Package http exposes the application over a JSON API.
package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/service"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type Options struct {
	// MaintenanceToken guards the maintenance endpoints. Empty disables them.
	MaintenanceToken string
	// CallbackAllowCIDRs limits the payment callback to the provider's
	// published source ranges. Empty accepts any source.
	CallbackAllowCIDRs []string
}

type Handler struct {
	logger   *types.Logger
	validate *validator.Validate
	opts     Options

	users         *service.UserService
	events        *service.EventService
	products      *service.ProductService
	orders        *service.OrderService
	payments      *service.PaymentService
	tasks         *service.TaskService
	participation *service.ParticipationService
	memberships   *service.MembershipService
	badges        *service.BadgeService
}

func NewHandler(
	logger *types.Logger,
	opts Options,
	users *service.UserService,
	events *service.EventService,
	products *service.ProductService,
	orders *service.OrderService,
	payments *service.PaymentService,
	tasks *service.TaskService,
	participation *service.ParticipationService,
	memberships *service.MembershipService,
	badges *service.BadgeService,
) *Handler {
	return &Handler{
		logger:   logger,
		validate: validator.New(),
		opts:     opts,

		users:         users,
		events:        events,
		products:      products,
		orders:        orders,
		payments:      payments,
		tasks:         tasks,
		participation: participation,
		memberships:   memberships,
		badges:        badges,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/", h.createUser)
	users.Get("/:id", h.getUser)
	users.Post("/:id/validate", h.validateUser)
	users.Post("/:id/code", h.resendValidationCode)
	users.Get("/:id/orders", h.listUserOrders)
	users.Post("/:id/badges/:badgeId", h.grantBadge)
	users.Delete("/:id/badges/:badgeId", h.revokeBadge)

	badges := api.Group("/badges")
	badges.Post("/", h.createBadge)
	badges.Get("/", h.listBadges)

	products := api.Group("/products")
	products.Post("/", h.createProduct)
	products.Get("/", h.listProducts)
	products.Get("/:id", h.getProduct)

	orders := api.Group("/orders")
	orders.Post("/", h.createOrder)
	orders.Get("/:id", h.getOrder)
	orders.Delete("/:id", h.deleteOrder)
	orders.Post("/:id/progress", h.progressOrder)
	orders.Post("/:id/payment", h.initiatePayment)
	orders.Get("/:id/payment", h.checkPaymentStatus)
	orders.Get("/:id/payment/events", h.listPaymentEvents)

	payments := api.Group("/payments")
	payments.Post("/callback", allowFrom(h.opts.CallbackAllowCIDRs), h.paymentCallback)

	events := api.Group("/events")
	events.Post("/", h.createEvent)
	events.Get("/", h.listEvents)
	events.Get("/:id", h.getEvent)
	events.Delete("/:id", h.deleteEvent)
	events.Post("/:id/submit", h.submitEvent)
	events.Post("/:id/approve", h.approveEvent)
	events.Post("/:id/cancel", h.cancelEvent)
	events.Get("/:id/participants", h.listParticipants)
	events.Post("/:id/participants", h.registerParticipant)
	events.Delete("/:id/participants/:userId", h.unregisterParticipant)
	events.Get("/:id/reserve", h.listReserve)
	events.Post("/:id/reserve", h.joinReserve)
	events.Delete("/:id/reserve/:userId", h.leaveReserve)
	events.Get("/:id/reserve/:userId", h.reservePosition)
	events.Get("/:id/board", h.getBoard)
	events.Get("/:id/shifts", h.listShifts)

	tasks := api.Group("/tasks")
	tasks.Post("/", h.createTask)
	tasks.Get("/:id", h.getTask)
	tasks.Post("/:id/assign", h.assignTask)
	tasks.Post("/:id/unassign", h.unassignTask)
	tasks.Post("/:id/status", h.moveTask)
	tasks.Get("/:id/next", h.nextAvailableShift)

	maintenance := api.Group("/maintenance", requireToken(h.opts.MaintenanceToken))
	maintenance.Post("/sweep", h.runSweep)
}

// parseBody decodes and validates a JSON request body.
func (h *Handler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validate.Struct(out); err != nil {
		return err
	}
	return nil
}
