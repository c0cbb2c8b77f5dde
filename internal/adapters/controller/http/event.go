package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func (h *Handler) createEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	event, err := h.events.Create(c.Context(), &entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		HostID:          req.HostID,
		LocationID:      req.LocationID,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, event)
}

func (h *Handler) listEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	events, err := h.events.GetWithPagination(c.Context(), limit, offset, "start_time")
	if err != nil {
		return fail(c, err)
	}
	return ok(c, events)
}

func (h *Handler) getEvent(c *fiber.Ctx) error {
	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, event)
}

func (h *Handler) deleteEvent(c *fiber.Ctx) error {
	if err := h.events.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) submitEvent(c *fiber.Ctx) error {
	event, err := h.events.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, event)
}

func (h *Handler) approveEvent(c *fiber.Ctx) error {
	event, err := h.events.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, event)
}

func (h *Handler) cancelEvent(c *fiber.Ctx) error {
	event, err := h.events.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, event)
}

func (h *Handler) listParticipants(c *fiber.Ctx) error {
	participants, err := h.participation.Participants(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, participants)
}

func (h *Handler) registerParticipant(c *fiber.Ctx) error {
	var req dto.RegisterParticipantRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	participant, err := h.participation.Register(c.Context(), req.UserID, req.TicketID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, participant)
}

func (h *Handler) unregisterParticipant(c *fiber.Ctx) error {
	if err := h.participation.Unregister(c.Context(), c.Params("id"), c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) listReserve(c *fiber.Ctx) error {
	reserves, err := h.participation.Reserves(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, reserves)
}

func (h *Handler) joinReserve(c *fiber.Ctx) error {
	var req dto.ReserveRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	reserve, err := h.participation.AddReserve(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, reserve)
}

func (h *Handler) leaveReserve(c *fiber.Ctx) error {
	if err := h.participation.RemoveReserve(c.Context(), c.Params("id"), c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) reservePosition(c *fiber.Ctx) error {
	position, err := h.participation.ReservePosition(c.Context(), c.Params("id"), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"position": position})
}
