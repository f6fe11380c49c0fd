package repository

import (
	"context"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves a record by key and cashier; nil, nil when absent or expired
	Get(ctx context.Context, key, cashierID string) (*entity.IdempotencyRecord, error)
	// Reserve claims key for cashierID; false when another request holds or completed it
	Reserve(ctx context.Context, key, cashierID string, ttl time.Duration) (bool, error)
	// Save stores the completed response for the remaining lifetime of the key
	Save(ctx context.Context, record *entity.IdempotencyRecord) error
	// Release drops a reservation whose request did not complete
	Release(ctx context.Context, key, cashierID string) error
}
