package service

import (
	"context"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/injapanfood/pos-api/pkg/pagination"
)

// OrderService serves the admin orders table
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewReadError("Failed to list orders", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	if err := validateCursor(params.Cursor); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, cursorListError("Failed to list orders", err)
	}

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor,
		func(o entity.Order) string { return o.ID },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}
