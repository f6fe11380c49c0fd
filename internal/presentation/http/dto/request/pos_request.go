package request

// AddItemRequest adds one unit of a catalog product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest changes a cart line's quantity by Delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-999,max=999"`
}

// CheckoutRequest completes the sale. An empty payment method is recorded as cash.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=50"`
}
