package repository

import (
	"context"
	"strings"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	order.CreatedAt = order.CreatedAt.UTC()
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) filtered(ctx context.Context, search, status string, start, end *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(CreatedBetween(start, end))
	if search != "" {
		query = query.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.filtered(ctx, params.Search, params.Status, params.StartDate, params.EndDate)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).Find(&orders).Error
	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	err = r.filtered(ctx, params.Search, params.Status, params.StartDate, params.EndDate).
		Scopes(Keyset(params.Cursor, cursor)).
		Find(&orders).Error

	return orders, err
}

func (r *orderRepository) ListRange(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Scopes(CreatedBetween(&start, &end)).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}
