package repository

import (
	"context"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/pkg/pagination"
)

// OrderRepository defines the read operations on customer orders
type OrderRepository interface {
	// Create is used by seeding and tests; orders are otherwise written by the storefront
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
	// ListRange returns every order with start <= created_at < end, oldest first
	ListRange(ctx context.Context, start, end time.Time) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}
