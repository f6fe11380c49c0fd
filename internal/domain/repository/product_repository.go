package repository

import (
	"context"

	"github.com/injapanfood/pos-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
}

// ProductFilterParams contains filtering parameters for catalog queries
type ProductFilterParams struct {
	Search     string
	Category   string
	ActiveOnly bool
}
