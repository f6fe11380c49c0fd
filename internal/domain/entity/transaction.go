package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is a completed POS sale.
// Amounts are whole yen.
type Transaction struct {
	ID            string                 `gorm:"size:36;primaryKey" json:"id"`
	Items         []TransactionItem      `gorm:"foreignKey:TransactionID" json:"items"`
	TotalAmount   int64                  `gorm:"not null" json:"total_amount"`
	CashierName   string                 `gorm:"size:255" json:"cashier_name"`
	CashierID     string                 `gorm:"size:64;index" json:"cashier_id"`
	Status        enum.TransactionStatus `gorm:"size:20;index" json:"status"`
	PaymentMethod string                 `gorm:"size:50" json:"payment_method"`
	CreatedAt     time.Time              `gorm:"index" json:"created_at"`
}

// BeforeCreate generates an ID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is a snapshot of a cart line at checkout
type TransactionItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	TransactionID string `gorm:"size:36;not null;index" json:"-"`
	Position      int    `gorm:"not null" json:"-"`
	ProductID     string `gorm:"size:64" json:"product_id"`
	Name          string `gorm:"size:255" json:"name"`
	UnitPrice     int64  `gorm:"not null" json:"unit_price"`
	Quantity      int    `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// Subtotal returns unit price times quantity
func (i TransactionItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// ItemCount returns the number of units sold
func (t *Transaction) ItemCount() int {
	n := 0
	for _, item := range t.Items {
		n += item.Quantity
	}
	return n
}
