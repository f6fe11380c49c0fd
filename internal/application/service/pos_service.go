package service

import (
	"context"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

// PosService drives the cashier screen: one cart per session, checkout and receipt.
type PosService struct {
	sessions    *SessionStore
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	checkout    *CheckoutService
	receipts    *ReceiptService
}

// NewPosService creates a new POS service
func NewPosService(
	sessions *SessionStore,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	checkout *CheckoutService,
	receipts *ReceiptService,
) *PosService {
	return &PosService{
		sessions:    sessions,
		productRepo: productRepo,
		txRepo:      txRepo,
		checkout:    checkout,
		receipts:    receipts,
	}
}

// CheckoutResult is the stored transaction and the receipt printed for it.
type CheckoutResult struct {
	Transaction *entity.Transaction `json:"transaction"`
	Receipt     *entity.Receipt     `json:"receipt"`
}

// OpenSession starts an empty cart for cashier.
func (s *PosService) OpenSession(cashier entity.Cashier) SessionSnapshot {
	sess := s.sessions.Open(cashier)
	log.Debug().Str("session_id", sess.ID).Str("cashier_id", cashier.ID).Msg("pos session opened")
	return sess.Snapshot()
}

// GetSession returns the cart of a session owned by cashier.
func (s *PosService) GetSession(cashier entity.Cashier, sessionID string) (SessionSnapshot, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return sess.Snapshot(), nil
}

// CloseSession discards a session and its cart.
func (s *PosService) CloseSession(cashier entity.Cashier, sessionID string) error {
	if _, err := s.session(cashier, sessionID); err != nil {
		return err
	}
	s.sessions.Close(sessionID)
	return nil
}

// AddItem adds one unit of an active catalog product.
func (s *PosService) AddItem(ctx context.Context, cashier entity.Cashier, sessionID, productID string) (SessionSnapshot, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return SessionSnapshot{}, apperror.NewReadError("Failed to load product", err)
	}
	if product == nil || !product.Active {
		return SessionSnapshot{}, apperror.NewNotFoundError("Product")
	}

	return s.mutate(sess, func(cart *entity.Cart) {
		cart.Add(product)
	}), nil
}

// UpdateQuantity changes a line's quantity by delta. Quantities never drop below one.
func (s *PosService) UpdateQuantity(cashier entity.Cashier, sessionID, productID string, delta int) (SessionSnapshot, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return s.mutate(sess, func(cart *entity.Cart) {
		cart.UpdateQuantity(productID, delta)
	}), nil
}

// RemoveItem deletes a line from the cart.
func (s *PosService) RemoveItem(cashier entity.Cashier, sessionID, productID string) (SessionSnapshot, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return s.mutate(sess, func(cart *entity.Cart) {
		cart.Remove(productID)
	}), nil
}

// ClearCart empties the cart without closing the session.
func (s *PosService) ClearCart(cashier entity.Cashier, sessionID string) (SessionSnapshot, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return s.mutate(sess, func(cart *entity.Cart) {
		cart.Clear()
	}), nil
}

// Checkout stores the session's cart and returns the transaction with its receipt.
// The session lock is held until the store has answered.
func (s *PosService) Checkout(ctx context.Context, cashier entity.Cashier, sessionID, paymentMethod string) (*CheckoutResult, error) {
	sess, err := s.session(cashier, sessionID)
	if err != nil {
		return nil, err
	}

	var tx *entity.Transaction
	err = sess.Do(func(cart *entity.Cart) error {
		var cerr error
		tx, cerr = s.checkout.Checkout(ctx, cart, cashier, paymentMethod)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	stored, err := s.txRepo.GetByID(ctx, tx.ID)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("receipt read-back failed, using checkout copy")
	case stored == nil:
		log.Warn().Str("transaction_id", tx.ID).Msg("transaction not visible yet, using checkout copy")
	default:
		tx = stored
	}

	return &CheckoutResult{
		Transaction: tx,
		Receipt:     BuildReceipt(tx, s.receipts.StoreInfo()),
	}, nil
}

func (s *PosService) session(cashier entity.Cashier, sessionID string) (*Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.Cashier.ID != cashier.ID {
		return nil, apperror.NewNotFoundError("Session")
	}
	return sess, nil
}

func (s *PosService) mutate(sess *Session, fn func(cart *entity.Cart)) SessionSnapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.cart)
	return sess.snapshotLocked()
}
