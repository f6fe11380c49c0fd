package service

import (
	"context"
	"errors"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/injapanfood/pos-api/pkg/pagination"
)

// TransactionService handles transaction history reads
type TransactionService struct {
	txRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{txRepo: txRepo}
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewReadError("Failed to load transaction", err)
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txs, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewReadError("Failed to list transactions", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// ListTransactionsWithCursor lists transactions with cursor-based pagination
func (s *TransactionService) ListTransactionsWithCursor(ctx context.Context, params *repository.TransactionCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Transaction], error) {
	if err := validateCursor(params.Cursor); err != nil {
		return nil, err
	}

	txs, err := s.txRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, cursorListError("Failed to list transactions", err)
	}

	cursorPag, items := pagination.NewCursorPagination(txs, params.Cursor,
		func(t entity.Transaction) string { return t.ID },
		func(t entity.Transaction) time.Time { return t.CreatedAt },
	)

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// cursorListError keeps a cursor the store rejected a client error
func cursorListError(msg string, err error) error {
	if errors.Is(err, pagination.ErrInvalidCursor) {
		return apperror.NewBadRequestError("Invalid cursor")
	}
	return apperror.NewReadError(msg, err)
}

func validateCursor(params *pagination.CursorParams) error {
	params.Validate()
	if _, err := params.DecodeCursor(); err != nil {
		return apperror.NewBadRequestError("Invalid cursor")
	}
	return nil
}
