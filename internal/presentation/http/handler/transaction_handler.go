package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/injapanfood/pos-api/pkg/apperror"
)

// TransactionHandler serves the POS transaction history
type TransactionHandler struct {
	transactionService *service.TransactionService
	loc                *time.Location
}

// NewTransactionHandler creates a new transaction handler. Date filters are read in loc.
func NewTransactionHandler(transactionService *service.TransactionService, loc *time.Location) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, loc: loc}
}

// List handles listing transactions (supports both page-based and cursor-based pagination)
func (h *TransactionHandler) List(c *gin.Context) {
	start, end, err := dateRange(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	var status *enum.TransactionStatus
	if s := c.Query("status"); s != "" {
		parsed, err := enum.ParseTransactionStatus(s)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError("Invalid status"))
			return
		}
		status = &parsed
	}

	if wantsCursor(c) {
		params := &repository.TransactionCursorFilterParams{
			Cursor:    cursorParams(c),
			Status:    status,
			CashierID: c.Query("cashier_id"),
			StartDate: start,
			EndDate:   end,
		}

		result, err := h.transactionService.ListTransactionsWithCursor(c.Request.Context(), params)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.SuccessWithCursor(c, 200, "Transactions retrieved successfully", result)
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: pageParams(c),
		Status:     status,
		CashierID:  c.Query("cashier_id"),
		StartDate:  start,
		EndDate:    end,
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get returns one transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}
