package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/request"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
)

// PosHandler handles the cashier screen: cart sessions and checkout
type PosHandler struct {
	posService *service.PosService
}

// NewPosHandler creates a new POS handler
func NewPosHandler(posService *service.PosService) *PosHandler {
	return &PosHandler{posService: posService}
}

// OpenSession starts a new empty cart for the authenticated cashier
func (h *PosHandler) OpenSession(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	response.Created(c, "Session opened", h.posService.OpenSession(cashier))
}

// GetSession returns the cart and its total
func (h *PosHandler) GetSession(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	snap, err := h.posService.GetSession(cashier, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", snap)
}

// CloseSession discards the session and its cart
func (h *PosHandler) CloseSession(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	if err := h.posService.CloseSession(cashier, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddItem adds one unit of a product
func (h *PosHandler) AddItem(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	snap, err := h.posService.AddItem(c.Request.Context(), cashier, c.Param("id"), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", snap)
}

// UpdateItem changes a line's quantity by a signed delta. The quantity never drops below one.
func (h *PosHandler) UpdateItem(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	snap, err := h.posService.UpdateQuantity(cashier, c.Param("id"), c.Param("product_id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", snap)
}

// RemoveItem drops a line from the cart
func (h *PosHandler) RemoveItem(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	snap, err := h.posService.RemoveItem(cashier, c.Param("id"), c.Param("product_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", snap)
}

// ClearCart empties the cart and keeps the session open
func (h *PosHandler) ClearCart(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	snap, err := h.posService.ClearCart(cashier, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", snap)
}

// Checkout stores the cart as a transaction and returns it with its receipt
func (h *PosHandler) Checkout(c *gin.Context) {
	cashier, ok := currentCashier(c)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	result, err := h.posService.Checkout(c.Request.Context(), cashier, c.Param("id"), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Checkout completed", result)
}
