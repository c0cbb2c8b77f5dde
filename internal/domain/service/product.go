package service

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type ProductStorage interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
}

type ProductService struct {
	logger *types.Logger

	storage ProductStorage
}

func NewProductService(logger *types.Logger, storage ProductStorage) *ProductService {
	return &ProductService{
		logger: logger,

		storage: storage,
	}
}

func (s *ProductService) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return s.storage.Create(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	return s.storage.Get(ctx, id)
}

func (s *ProductService) GetAll(ctx context.Context) ([]entity.Product, error) {
	return s.storage.GetAll(ctx)
}

func (s *ProductService) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return s.storage.Update(ctx, product)
}
