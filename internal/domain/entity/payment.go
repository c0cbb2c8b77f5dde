package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent is an audit row for every provider callback received,
// including duplicates. The raw payload is kept verbatim.
type PaymentEvent struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	OrderID   string `gorm:"not null;type:uuid;index"`
	State     string
	Payload   datatypes.JSONMap
}

func (e *PaymentEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
