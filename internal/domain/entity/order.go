package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer order as listed on the admin dashboard.
// Orders are written by the storefront; this service only reads them.
type Order struct {
	ID           string    `gorm:"size:36;primaryKey" json:"id"`
	CustomerName string    `gorm:"size:255" json:"customer_name"`
	TotalPrice   int64     `gorm:"not null;default:0" json:"total_price"`
	Status       string    `gorm:"size:30;index" json:"status"`
	ItemCount    int       `gorm:"default:0" json:"item_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate generates an ID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
