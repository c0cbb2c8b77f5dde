package postgres

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := dbFrom(ctx, s.db).Create(&event).Error
	return event, err
}

func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := dbFrom(ctx, s.db).
		Preload("Tickets").
		Preload("Location").
		Where("id = ?", id).
		First(&event).Error
	return &event, wrapNotFound(err)
}

func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := dbFrom(ctx, s.db).Omit("Tickets", "Host", "Location").Save(&event).Error
	return event, err
}

func (s *EventStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&entity.Event{}).Count(&count).Error
	return count, err
}

func (s *EventStorage) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	var events []entity.Event
	err := dbFrom(ctx, s.db).Order(order).Limit(limit).Offset(offset).Find(&events).Error
	return events, err
}

func (s *EventStorage) GetUpcoming(ctx context.Context, before time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := dbFrom(ctx, s.db).
		Where("status = ? AND start_time > ? AND start_time < ?", entity.EventStatusPublished, time.Now(), before).
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (s *EventStorage) Delete(ctx context.Context, id string) error {
	return dbFrom(ctx, s.db).Delete(&entity.Event{}, "id = ?", id).Error
}

func (s *EventStorage) GetTicket(ctx context.Context, id string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := dbFrom(ctx, s.db).
		Preload("Event").
		Where("id = ?", id).
		First(&ticket).Error
	return &ticket, wrapNotFound(err)
}

// GetVolunteerTicket returns the event's volunteer ticket if it has one.
func (s *EventStorage) GetVolunteerTicket(ctx context.Context, eventID string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := dbFrom(ctx, s.db).
		Where("event_id = ? AND kind = ?", eventID, entity.TicketKindVolunteer).
		First(&ticket).Error
	return &ticket, wrapNotFound(err)
}
