package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusError     OrderStatus = "error"
)

// OrderStatusPath is the linear part of the order lifecycle, in progression
// order. Cancelled and error sit outside it and absorb from any state.
var OrderStatusPath = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusCompleted,
}

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPaid:      1,
	OrderStatusShipped:   2,
	OrderStatusCompleted: 3,
}

// Rank returns the position of the status on the linear path, or -1 for the
// absorbing statuses.
func (s OrderStatus) Rank() int {
	if r, ok := orderStatusRank[s]; ok {
		return r
	}
	return -1
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusError
}

type Order struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
	UserID    string      `gorm:"not null;type:uuid;index"`
	User      User
	Status    OrderStatus `gorm:"not null;default:'pending'"`
	// TotalAmount is frozen at creation time. Later product price changes do
	// not touch placed orders.
	TotalAmount int64     `gorm:"not null"`
	OrderedAt   time.Time `gorm:"not null"`
	// PaymentOrderID and PayeeReference are set once a payment request has
	// been created with the provider.
	PaymentOrderID string
	PayeeReference string
	// Tokenized orders capture final funds at completion.
	Tokenized bool

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is immutable after creation. UnitPrice is the product price at
// order time. FulfilledAt marks that the item's specialization effect has
// been applied, so retries never apply it twice.
type OrderItem struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	OrderID     string `gorm:"not null;type:uuid;index"`
	ProductID   string `gorm:"not null;type:uuid"`
	Product     Product
	Quantity    int   `gorm:"not null"`
	UnitPrice   int64 `gorm:"not null"`
	FulfilledAt *time.Time
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
