package repository

import (
	"context"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/pkg/pagination"
)

// TransactionRepository defines the interface for transaction data operations.
// Transactions are append-only: there is no update or delete.
type TransactionRepository interface {
	// Create appends a transaction and sets its store-assigned ID
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListWithCursor returns up to Cursor.Limit+1 transactions in query order
	ListWithCursor(ctx context.Context, params *TransactionCursorFilterParams) ([]entity.Transaction, error)
	// ListRange returns every transaction with start <= created_at < end, oldest first
	ListRange(ctx context.Context, start, end time.Time) ([]entity.Transaction, error)
	// ListRecent returns the newest transactions
	ListRecent(ctx context.Context, limit int) ([]entity.Transaction, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.TransactionStatus
	CashierID  string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionCursorFilterParams contains cursor-based filtering for transaction queries
type TransactionCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Status    *enum.TransactionStatus
	CashierID string
	StartDate *time.Time
	EndDate   *time.Time
}
