package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusDraft           EventStatus = "draft"
	EventStatusPendingApproval EventStatus = "pending_approval"
	EventStatusPublished       EventStatus = "published"
	EventStatusCancelled       EventStatus = "cancelled"
)

type Event struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt
	Title           string `gorm:"not null"`
	Description     string
	StartTime       time.Time `gorm:"not null"`
	EndTime         time.Time
	// MaxParticipants caps the roster across all of the event's tickets.
	// Zero or negative means uncapped.
	MaxParticipants int
	Status          EventStatus `gorm:"not null;default:'draft'"`
	HostID          string      `gorm:"not null;type:uuid"`
	Host            User
	LocationID      *string `gorm:"type:uuid"`
	Location        *Location

	Tickets []Ticket `gorm:"foreignKey:EventID"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// IsOver checks if the event is over, considering the additional time.
// A positive additionalTime treats the event as over that much earlier.
func (e *Event) IsOver(additionalTime time.Duration) bool {
	return e.StartTime.Before(time.Now().Add(-additionalTime))
}

type Location struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null"`
	Address   string
	City      string
}

func (l *Location) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// EventParticipant links a user to an event through one of its tickets.
// A user holds at most one participant row per event.
type EventParticipant struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	TicketID  string `gorm:"not null;type:uuid"`
	EventID   string `gorm:"not null;type:uuid;uniqueIndex:idx_event_participant"`
	UserID    string `gorm:"not null;type:uuid;uniqueIndex:idx_event_participant"`

	Ticket Ticket
	User   User
}

func (p *EventParticipant) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EventReserve is a waiting-list entry. First joined is first in line.
type EventReserve struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	EventID  string `gorm:"not null;type:uuid;uniqueIndex:idx_event_reserve"`
	UserID   string `gorm:"not null;type:uuid;uniqueIndex:idx_event_reserve"`
	JoinedAt time.Time `gorm:"not null"`
}

func (r *EventReserve) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
