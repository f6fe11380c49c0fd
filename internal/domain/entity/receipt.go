package entity

import "time"

// StoreInfo is the shop header printed at the top of every receipt.
type StoreInfo struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Receipt is a value object representing a printable receipt.
// It is never stored; it is projected from a transaction on demand.
type Receipt struct {
	Header        StoreInfo     `json:"header"`
	ReceiptNo     string        `json:"receipt_no"`
	TransactionID string        `json:"transaction_id"`
	Date          time.Time     `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Total         int64         `json:"total"`
}
