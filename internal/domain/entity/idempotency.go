package entity

import (
	"time"
)

// IdempotencyRecord stores the outcome of a request sent with an Idempotency-Key
type IdempotencyRecord struct {
	Key          string    `json:"key"`
	CashierID    string    `json:"cashier_id"`
	Endpoint     string    `json:"endpoint"` // e.g. "POST /api/v1/pos/sessions/:id/checkout"
	RequestHash  string    `json:"request_hash,omitempty"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired checks if the record has expired
func (i *IdempotencyRecord) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
