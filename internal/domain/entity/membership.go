package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserMembership is the single active membership of a user. Renewals extend
// ExpiresAt instead of creating new rows.
type UserMembership struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	// ReminderSentAt marks that an expiry reminder went out for the current
	// expiry date, so the daily sweep does not mail twice.
	ReminderSentAt *time.Time
}

func (m *UserMembership) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *UserMembership) Expired(now time.Time) bool {
	return !m.ExpiresAt.After(now)
}

type SkillBadge struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	Name        string `gorm:"not null;uniqueIndex"`
	Description string
}

func (b *SkillBadge) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
