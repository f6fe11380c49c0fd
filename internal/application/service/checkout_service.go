package service

import (
	"context"
	"strings"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

// DefaultPaymentMethod is recorded when the cashier does not pick one
const DefaultPaymentMethod = "Cash"

// CheckoutService turns a cart into a stored transaction
type CheckoutService struct {
	txRepo repository.TransactionRepository
	feed   event.Feed
	now    func() time.Time
}

// NewCheckoutService creates a new checkout service. feed may be nil.
func NewCheckoutService(txRepo repository.TransactionRepository, feed event.Feed) *CheckoutService {
	return &CheckoutService{
		txRepo: txRepo,
		feed:   feed,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp transactions
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// Checkout stores the cart as a completed transaction and clears it.
// The cart is only cleared once the store has accepted the transaction.
func (s *CheckoutService) Checkout(ctx context.Context, cart *entity.Cart, cashier entity.Cashier, paymentMethod string) (*entity.Transaction, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	lines := cart.Lines()
	items := make([]entity.TransactionItem, len(lines))
	for i, line := range lines {
		items[i] = entity.TransactionItem{
			Position:  i,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	tx := &entity.Transaction{
		Items:         items,
		TotalAmount:   cart.Total(),
		CashierName:   cashier.Name,
		CashierID:     cashier.ID,
		Status:        enum.TransactionStatusCompleted,
		PaymentMethod: paymentMethod,
		CreatedAt:     s.now(),
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		log.Error().Err(err).Str("cashier_id", cashier.ID).Int64("total", tx.TotalAmount).Msg("checkout: store append failed")
		return nil, apperror.NewPersistenceError("Failed to save transaction", err)
	}

	cart.Clear()

	log.Info().
		Str("transaction_id", tx.ID).
		Str("cashier_id", cashier.ID).
		Int64("total", tx.TotalAmount).
		Int("items", tx.ItemCount()).
		Msg("checkout completed")

	s.publish(ctx, tx)
	return tx, nil
}

func (s *CheckoutService) publish(ctx context.Context, tx *entity.Transaction) {
	if s.feed == nil {
		return
	}
	evt := event.TransactionCompleted{
		TransactionID: tx.ID,
		TotalAmount:   tx.TotalAmount,
		ItemCount:     tx.ItemCount(),
		CashierID:     tx.CashierID,
		CreatedAt:     tx.CreatedAt,
	}
	if err := s.feed.Publish(context.WithoutCancel(ctx), evt); err != nil {
		log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("live feed publish failed")
	}
}
