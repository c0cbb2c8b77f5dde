package postgres

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderStorage struct {
	db *gorm.DB
}

func NewOrderStorage(db *gorm.DB) *OrderStorage {
	return &OrderStorage{
		db: db,
	}
}

// Create persists the order together with its items in one statement.
func (s *OrderStorage) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	err := dbFrom(ctx, s.db).Create(&order).Error
	return order, err
}

func (s *OrderStorage) Get(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := dbFrom(ctx, s.db).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Membership").
		Preload("Items.Product.Ticket").
		Where("id = ?", id).
		First(&order).Error
	return &order, wrapNotFound(err)
}

// GetForUpdate reads the order under a row lock so concurrent progressions
// serialize. SQLite has no FOR UPDATE; its writes serialize anyway.
func (s *OrderStorage) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	db := dbFrom(ctx, s.db)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var order entity.Order
	err := db.Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	err = dbFrom(ctx, s.db).
		Preload("Product").
		Preload("Product.Membership").
		Preload("Product.Ticket").
		Where("order_id = ?", id).
		Find(&order.Items).Error
	return &order, err
}

func (s *OrderStorage) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	return dbFrom(ctx, s.db).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *OrderStorage) Update(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	err := dbFrom(ctx, s.db).Omit("Items").Save(&order).Error
	return order, err
}

func (s *OrderStorage) MarkItemFulfilled(ctx context.Context, itemID string, at time.Time) error {
	return dbFrom(ctx, s.db).
		Model(&entity.OrderItem{}).
		Where("id = ?", itemID).
		Update("fulfilled_at", at).Error
}

// Delete removes the order and its items permanently.
func (s *OrderStorage) Delete(ctx context.Context, id string) error {
	if err := dbFrom(ctx, s.db).Unscoped().Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return dbFrom(ctx, s.db).Unscoped().Where("id = ?", id).Delete(&entity.Order{}).Error
}

func (s *OrderStorage) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.Order, error) {
	var orders []entity.Order
	err := dbFrom(ctx, s.db).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ordered_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}
