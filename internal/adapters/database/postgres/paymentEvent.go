package postgres

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type PaymentEventStorage struct {
	db *gorm.DB
}

func NewPaymentEventStorage(db *gorm.DB) *PaymentEventStorage {
	return &PaymentEventStorage{
		db: db,
	}
}

func (s *PaymentEventStorage) Create(ctx context.Context, event *entity.PaymentEvent) (*entity.PaymentEvent, error) {
	err := dbFrom(ctx, s.db).Create(&event).Error
	return event, err
}

func (s *PaymentEventStorage) GetByOrderID(ctx context.Context, orderID string) ([]entity.PaymentEvent, error) {
	var events []entity.PaymentEvent
	err := dbFrom(ctx, s.db).Where("order_id = ?", orderID).Order("created_at").Find(&events).Error
	return events, err
}
