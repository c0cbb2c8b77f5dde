package postgres

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type EventReserveStorage struct {
	db *gorm.DB
}

func NewEventReserveStorage(db *gorm.DB) *EventReserveStorage {
	return &EventReserveStorage{
		db: db,
	}
}

// Upsert keeps at most one reserve row per (event, user). Re-joining keeps
// the original position in line.
func (s *EventReserveStorage) Upsert(ctx context.Context, eventID, userID string, joinedAt time.Time) (*entity.EventReserve, error) {
	r := entity.EventReserve{EventID: eventID, UserID: userID}
	err := dbFrom(ctx, s.db).
		Where(entity.EventReserve{EventID: eventID, UserID: userID}).
		Attrs(entity.EventReserve{JoinedAt: joinedAt}).
		FirstOrCreate(&r).Error
	return &r, err
}

func (s *EventReserveStorage) Get(ctx context.Context, eventID, userID string) (*entity.EventReserve, error) {
	var r entity.EventReserve
	err := dbFrom(ctx, s.db).Where("event_id = ? AND user_id = ?", eventID, userID).First(&r).Error
	return &r, wrapNotFound(err)
}

func (s *EventReserveStorage) Delete(ctx context.Context, eventID, userID string) error {
	return dbFrom(ctx, s.db).Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&entity.EventReserve{}).Error
}

func (s *EventReserveStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.EventReserve, error) {
	var rs []entity.EventReserve
	err := dbFrom(ctx, s.db).Where("event_id = ?", eventID).Order("joined_at").Find(&rs).Error
	return rs, err
}

// CountEarlier counts reserve entries that joined strictly before the given
// time, which is the zero-based position in line.
func (s *EventReserveStorage) CountEarlier(ctx context.Context, eventID string, joinedAt time.Time) (int64, error) {
	var count int64
	err := dbFrom(ctx, s.db).
		Model(&entity.EventReserve{}).
		Where("event_id = ? AND joined_at < ?", eventID, joinedAt).
		Count(&count).Error
	return count, err
}
