package dto

import (
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

// ShiftGroup is a set of shifts sharing a name within an event, ordered by
// (earliest start, earliest end, name).
type ShiftGroup struct {
	Name  string        `json:"name"`
	Tasks []entity.Task `json:"tasks"`
}

// Board is the kanban view of an event's tasks keyed by status column.
type Board struct {
	Todo       []entity.Task `json:"todo"`
	InProgress []entity.Task `json:"inProgress"`
	InReview   []entity.Task `json:"inReview"`
	Done       []entity.Task `json:"done"`
}

type CreateTaskRequest struct {
	EventID    *string   `json:"eventId" validate:"omitempty,uuid4"`
	Name       string    `json:"name" validate:"required"`
	ReviewerID *string   `json:"reviewerId" validate:"omitempty,uuid4"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Tags       []string  `json:"tags"`
	BadgeIDs   []string  `json:"badgeIds" validate:"omitempty,dive,uuid4"`
}

type AssignTaskRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}

type MoveTaskRequest struct {
	Status  string `json:"status" validate:"required"`
	ActorID string `json:"actorId" validate:"required,uuid4"`
}

// SweepReport summarizes one run of the membership maintenance sweep.
type SweepReport struct {
	PurgedUsers   int `json:"purgedUsers"`
	RemindersSent int `json:"remindersSent"`
}
