package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

// GetByUserID returns nil without error when the user holds no membership.
func (s *MembershipStorage) GetByUserID(ctx context.Context, userID string) (*entity.UserMembership, error) {
	var m entity.UserMembership
	err := dbFrom(ctx, s.db).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (s *MembershipStorage) Save(ctx context.Context, m *entity.UserMembership) (*entity.UserMembership, error) {
	err := dbFrom(ctx, s.db).Save(&m).Error
	return m, err
}

// GetExpiring lists memberships expiring before the deadline that have not
// been reminded about yet.
func (s *MembershipStorage) GetExpiring(ctx context.Context, before time.Time) ([]entity.UserMembership, error) {
	var ms []entity.UserMembership
	err := dbFrom(ctx, s.db).
		Where("expires_at > ? AND expires_at < ? AND reminder_sent_at IS NULL", time.Now(), before).
		Find(&ms).Error
	return ms, err
}
