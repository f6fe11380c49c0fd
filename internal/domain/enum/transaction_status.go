package enum

import (
	"encoding/json"
	"fmt"
)

// TransactionStatus represents the lifecycle state of a POS transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusCompleted TransactionStatus = "completed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusCompleted:
		return true
	}
	return false
}

// ParseTransactionStatus parses a query or body value into a status
func ParseTransactionStatus(v string) (TransactionStatus, error) {
	s := TransactionStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown transaction status %q", v)
	}
	return s, nil
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTransactionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
