package event

import (
	"context"
	"time"
)

// TransactionCompleted is published after a checkout has been stored
type TransactionCompleted struct {
	TransactionID string    `json:"transaction_id"`
	TotalAmount   int64     `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	CashierID     string    `json:"cashier_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Feed fans completed transactions out to live dashboard subscribers
type Feed interface {
	Publish(ctx context.Context, evt TransactionCompleted) error
	// Subscribe returns a channel of events and a cancel func that unsubscribes
	// and closes the channel. The subscription also ends when ctx is done.
	Subscribe(ctx context.Context) (<-chan TransactionCompleted, func(), error)
	Close() error
}
