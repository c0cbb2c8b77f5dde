package http

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func (h *Handler) createTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	badges := make([]entity.SkillBadge, 0, len(req.BadgeIDs))
	for _, id := range req.BadgeIDs {
		badges = append(badges, entity.SkillBadge{ID: id})
	}
	task, err := h.tasks.Create(c.Context(), &entity.Task{
		EventID:     req.EventID,
		Name:        req.Name,
		ReviewerID:  req.ReviewerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Tags:        datatypes.NewJSONSlice(req.Tags),
		SkillBadges: badges,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, task)
}

func (h *Handler) getTask(c *fiber.Ctx) error {
	task, err := h.tasks.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, task)
}

func (h *Handler) assignTask(c *fiber.Ctx) error {
	var req dto.AssignTaskRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.tasks.Assign(c.Context(), req.UserID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) unassignTask(c *fiber.Ctx) error {
	var req dto.AssignTaskRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.tasks.Unassign(c.Context(), req.UserID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) moveTask(c *fiber.Ctx) error {
	var req dto.MoveTaskRequest
	if err := h.parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.tasks.MoveStatus(c.Context(), c.Params("id"), entity.TaskStatus(req.Status), req.ActorID); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *Handler) getBoard(c *fiber.Ctx) error {
	board, err := h.tasks.Board(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, board)
}

func (h *Handler) listShifts(c *fiber.Ctx) error {
	shifts, err := h.tasks.Shifts(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, shifts)
}

func (h *Handler) nextAvailableShift(c *fiber.Ctx) error {
	next, err := h.tasks.NextAvailable(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, next)
}
