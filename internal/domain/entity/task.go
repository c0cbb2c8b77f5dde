package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

// Task is a kanban card for event organizing. Tasks with a time range are
// shifts; tasks sharing a name within an event form a shift group.
type Task struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
	EventID    *string `gorm:"type:uuid;index"`
	Event      *Event
	Name       string     `gorm:"not null"`
	Status     TaskStatus `gorm:"not null;default:'todo'"`
	AssigneeID *string    `gorm:"type:uuid"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID"`
	ReviewerID *string    `gorm:"type:uuid"`
	Reviewer   *User      `gorm:"foreignKey:ReviewerID"`
	StartTime  time.Time
	EndTime    time.Time
	Tags       datatypes.JSONSlice[string]

	SkillBadges []SkillBadge `gorm:"many2many:task_skill_badges"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
