package postgres

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

// shiftOrder is the canonical ordering for shifts and shift groups.
const shiftOrder = "start_time, end_time, name"

type TaskStorage struct {
	db *gorm.DB
}

func NewTaskStorage(db *gorm.DB) *TaskStorage {
	return &TaskStorage{
		db: db,
	}
}

func (s *TaskStorage) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	err := dbFrom(ctx, s.db).Create(&task).Error
	return task, err
}

func (s *TaskStorage) Get(ctx context.Context, id string) (*entity.Task, error) {
	var task entity.Task
	err := dbFrom(ctx, s.db).
		Preload("SkillBadges").
		Preload("Event").
		Where("id = ?", id).
		First(&task).Error
	return &task, wrapNotFound(err)
}

func (s *TaskStorage) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	err := dbFrom(ctx, s.db).Omit("SkillBadges", "Event", "Assignee", "Reviewer").Save(&task).Error
	return task, err
}

func (s *TaskStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Task, error) {
	var tasks []entity.Task
	err := dbFrom(ctx, s.db).
		Preload("SkillBadges").
		Where("event_id = ?", eventID).
		Order(shiftOrder).
		Find(&tasks).Error
	return tasks, err
}

// GetGroup lists all shifts sharing a name with the given task, in shift
// order. Standalone tasks group by name alone.
func (s *TaskStorage) GetGroup(ctx context.Context, eventID *string, name string) ([]entity.Task, error) {
	db := dbFrom(ctx, s.db).Where("name = ?", name)
	if eventID != nil {
		db = db.Where("event_id = ?", *eventID)
	} else {
		db = db.Where("event_id IS NULL")
	}
	var tasks []entity.Task
	err := db.Order(shiftOrder).Find(&tasks).Error
	return tasks, err
}
