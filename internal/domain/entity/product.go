package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketKind string

const (
	TicketKindStandard  TicketKind = "standard"
	TicketKindEarlyBird TicketKind = "early_bird"
	TicketKindVolunteer TicketKind = "volunteer"
)

// Product is anything sold through the storefront: memberships, merch and
// event tickets. Price is in minor currency units. A nil Stock means the
// product is unlimited.
type Product struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Name        string `gorm:"not null"`
	Description string
	Price       int64 `gorm:"not null"`
	Stock       *int

	Membership *ProductMembership `gorm:"foreignKey:ProductID"`
	Ticket     *Ticket            `gorm:"foreignKey:ProductID"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductMembership marks a product as granting membership time on purchase.
type ProductMembership struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	CreatedAt    time.Time
	ProductID    string `gorm:"not null;uniqueIndex"`
	DurationDays int    `gorm:"not null"`
}

func (m *ProductMembership) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Ticket marks a product as granting participation in an event.
type Ticket struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	ProductID string     `gorm:"not null;uniqueIndex"`
	EventID   string     `gorm:"not null;index"`
	Kind      TicketKind `gorm:"not null;default:'standard'"`

	Event Event `gorm:"foreignKey:EventID"`
}

func (t *Ticket) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
