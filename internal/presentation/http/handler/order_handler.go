package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
)

// OrderHandler serves the admin orders table
type OrderHandler struct {
	orderService *service.OrderService
	loc          *time.Location
}

// NewOrderHandler creates a new order handler. Date filters are read in loc.
func NewOrderHandler(orderService *service.OrderService, loc *time.Location) *OrderHandler {
	return &OrderHandler{orderService: orderService, loc: loc}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	start, end, err := dateRange(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	if wantsCursor(c) {
		params := &repository.OrderCursorFilterParams{
			Cursor:    cursorParams(c),
			Search:    c.Query("search"),
			Status:    c.Query("status"),
			StartDate: start,
			EndDate:   end,
		}

		result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), params)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.SuccessWithCursor(c, 200, "Orders retrieved successfully", result)
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		StartDate:  start,
		EndDate:    end,
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}
