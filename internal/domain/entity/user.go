package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusValidated UserStatus = "validated"
)

type User struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
	FirstName string `gorm:"not null"`
	LastName  string
	Email     string     `gorm:"not null;uniqueIndex"`
	Phone     string
	Role      Role       `gorm:"not null;default:'member'"`
	Status    UserStatus `gorm:"not null;default:'pending'"`

	Membership  *UserMembership `gorm:"foreignKey:UserID"`
	SkillBadges []SkillBadge    `gorm:"many2many:user_skill_badges"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasActiveMembership reports whether the user holds a membership that has
// not yet expired. Users without one only see public pages and their own
// profile, which is enforced by the presentation layer.
func (u *User) HasActiveMembership(now time.Time) bool {
	return u.Membership != nil && u.Membership.ExpiresAt.After(now)
}
