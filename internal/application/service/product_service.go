package service

import (
	"context"
	"slices"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
)

// ProductService serves the POS catalog
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Catalog is the product grid shown on the cashier screen
type Catalog struct {
	Categories []string         `json:"categories"`
	Products   []entity.Product `json:"products"`
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewReadError("Failed to load product", err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListCatalog returns the active products matching params and the categories among them
func (s *ProductService) ListCatalog(ctx context.Context, params *repository.ProductFilterParams) (*Catalog, error) {
	params.ActiveOnly = true
	products, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewReadError("Failed to list products", err)
	}
	if products == nil {
		products = []entity.Product{}
	}

	categories := make([]string, 0)
	for _, p := range products {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	slices.Sort(categories)

	return &Catalog{
		Categories: categories,
		Products:   products,
	}, nil
}
