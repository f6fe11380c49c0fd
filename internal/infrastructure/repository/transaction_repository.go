package repository

import (
	"context"
	"errors"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the transaction and its items in one database transaction
func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	tx.CreatedAt = tx.CreatedAt.UTC()
	for i := range tx.Items {
		tx.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return db.Create(tx).Error
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) filtered(ctx context.Context, f transactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).Scopes(CreatedBetween(f.start, f.end))
	if f.status != nil {
		query = query.Where("status = ?", *f.status)
	}
	if f.cashierID != "" {
		query = query.Where("cashier_id = ?", f.cashierID)
	}
	return query
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.filtered(ctx, transactionFilter{params.Status, params.CashierID, params.StartDate, params.EndDate})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items", orderedItems).
		Find(&txs).Error

	return txs, total, err
}

// ListWithCursor returns transactions using cursor-based pagination
func (r *transactionRepository) ListWithCursor(ctx context.Context, params *domainRepo.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	var txs []entity.Transaction

	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	err = r.filtered(ctx, transactionFilter{params.Status, params.CashierID, params.StartDate, params.EndDate}).
		Scopes(Keyset(params.Cursor, cursor)).
		Preload("Items", orderedItems).
		Find(&txs).Error

	return txs, err
}

func (r *transactionRepository) ListRange(ctx context.Context, start, end time.Time) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(CreatedBetween(&start, &end)).
		Preload("Items", orderedItems).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) ListRecent(ctx context.Context, limit int) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

type transactionFilter struct {
	status    *enum.TransactionStatus
	cashierID string
	start     *time.Time
	end       *time.Time
}
