package postgres

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type EventParticipantStorage struct {
	db *gorm.DB
}

func NewEventParticipantStorage(db *gorm.DB) *EventParticipantStorage {
	return &EventParticipantStorage{
		db: db,
	}
}

func (s *EventParticipantStorage) Create(ctx context.Context, p *entity.EventParticipant) (*entity.EventParticipant, error) {
	err := dbFrom(ctx, s.db).Create(&p).Error
	return p, err
}

// GetOrCreate makes fulfillment idempotent per (user, event): replays find
// the existing row instead of inserting a second one.
func (s *EventParticipantStorage) GetOrCreate(ctx context.Context, p *entity.EventParticipant) (*entity.EventParticipant, error) {
	err := dbFrom(ctx, s.db).
		Where(entity.EventParticipant{EventID: p.EventID, UserID: p.UserID}).
		Attrs(entity.EventParticipant{TicketID: p.TicketID}).
		FirstOrCreate(&p).Error
	return p, err
}

func (s *EventParticipantStorage) Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error) {
	var p entity.EventParticipant
	err := dbFrom(ctx, s.db).Where("event_id = ? AND user_id = ?", eventID, userID).First(&p).Error
	return &p, wrapNotFound(err)
}

func (s *EventParticipantStorage) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).
		Model(&entity.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *EventParticipantStorage) Delete(ctx context.Context, eventID, userID string) error {
	return dbFrom(ctx, s.db).Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&entity.EventParticipant{}).Error
}

func (s *EventParticipantStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.EventParticipant, error) {
	var ps []entity.EventParticipant
	err := dbFrom(ctx, s.db).Preload("User").Where("event_id = ?", eventID).Find(&ps).Error
	return ps, err
}

// CountByEventID counts participants across all of the event's tickets. The
// sold-out predicate recomputes this on every read.
func (s *EventParticipantStorage) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, s.db).
		Model(&entity.EventParticipant{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
