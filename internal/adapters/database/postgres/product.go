package postgres

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type ProductStorage struct {
	db *gorm.DB
}

func NewProductStorage(db *gorm.DB) *ProductStorage {
	return &ProductStorage{
		db: db,
	}
}

func (s *ProductStorage) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	err := dbFrom(ctx, s.db).Create(&product).Error
	return product, err
}

func (s *ProductStorage) Get(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, s.db).
		Preload("Membership").
		Preload("Ticket").
		Preload("Ticket.Event").
		Where("id = ?", id).
		First(&product).Error
	return &product, wrapNotFound(err)
}

func (s *ProductStorage) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, s.db).
		Preload("Membership").
		Preload("Ticket").
		Find(&products).Error
	return products, err
}

func (s *ProductStorage) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	err := dbFrom(ctx, s.db).Save(&product).Error
	return product, err
}

// DecrementStock takes qty units off a finite stock. Products with NULL
// stock are unlimited and always succeed.
func (s *ProductStorage) DecrementStock(ctx context.Context, id string, qty int) error {
	res := dbFrom(ctx, s.db).
		Model(&entity.Product{}).
		Where("id = ? AND (stock IS NULL OR stock >= ?)", id, qty).
		Update("stock", gorm.Expr("CASE WHEN stock IS NULL THEN NULL ELSE stock - ? END", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.OutOfStock
	}
	return nil
}

func (s *ProductStorage) IncrementStock(ctx context.Context, id string, qty int) error {
	return dbFrom(ctx, s.db).
		Model(&entity.Product{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
