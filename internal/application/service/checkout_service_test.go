package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)

func newTestCheckout(repo *fakeTxRepo, feed event.Feed) *CheckoutService {
	return NewCheckoutService(repo, feed).WithClock(func() time.Time { return fixedNow })
}

func filledCart() *entity.Cart {
	cart := entity.NewCart()
	cart.Add(ramen())
	cart.Add(ramen())
	cart.Add(gyoza())
	return cart
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := &fakeTxRepo{}
	feed := &fakeFeed{}
	cart := entity.NewCart()

	tx, err := newTestCheckout(repo, feed).Checkout(context.Background(), cart, testCashier, "Cash")

	require.Error(t, err)
	assert.Nil(t, tx)
	assert.True(t, errors.Is(err, apperror.ErrEmptyCart))
	assert.Equal(t, 0, repo.creates, "store must not be called for an empty cart")
	assert.Empty(t, feed.published)
}

func TestCheckout_Success(t *testing.T) {
	repo := &fakeTxRepo{}
	feed := &fakeFeed{}
	cart := filledCart()
	before := cart.Total()

	tx, err := newTestCheckout(repo, feed).Checkout(context.Background(), cart, testCashier, "Card")
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, before, tx.TotalAmount)
	assert.Equal(t, int64(2900), tx.TotalAmount)
	assert.Equal(t, enum.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, "Card", tx.PaymentMethod)
	assert.Equal(t, testCashier.ID, tx.CashierID)
	assert.Equal(t, testCashier.Name, tx.CashierName)
	assert.Equal(t, fixedNow, tx.CreatedAt)

	require.Len(t, tx.Items, 2)
	assert.Equal(t, "p-ramen", tx.Items[0].ProductID)
	assert.Equal(t, 2, tx.Items[0].Quantity)
	assert.Equal(t, 0, tx.Items[0].Position)
	assert.Equal(t, "p-gyoza", tx.Items[1].ProductID)
	assert.Equal(t, 1, tx.Items[1].Position)

	assert.True(t, cart.IsEmpty(), "cart is cleared after a stored checkout")
	assert.Equal(t, int64(0), cart.Total())

	require.Len(t, feed.published, 1)
	assert.Equal(t, tx.ID, feed.published[0].TransactionID)
	assert.Equal(t, int64(2900), feed.published[0].TotalAmount)
	assert.Equal(t, 3, feed.published[0].ItemCount)
}

func TestCheckout_DefaultsPaymentMethod(t *testing.T) {
	tx, err := newTestCheckout(&fakeTxRepo{}, nil).Checkout(context.Background(), filledCart(), testCashier, "  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, tx.PaymentMethod)
}

func TestCheckout_StoreFailureKeepsCart(t *testing.T) {
	repo := &fakeTxRepo{err: errors.New("connection reset")}
	feed := &fakeFeed{}
	cart := filledCart()
	before := cart.Lines()

	tx, err := newTestCheckout(repo, feed).Checkout(context.Background(), cart, testCashier, "Cash")

	require.Error(t, err)
	assert.Nil(t, tx)
	assert.True(t, errors.Is(err, apperror.ErrPersistence))
	assert.Equal(t, 1, repo.creates, "a failed append is not retried")
	assert.Equal(t, before, cart.Lines())
	assert.Equal(t, int64(2900), cart.Total())
	assert.Empty(t, feed.published)
}

func TestCheckout_FeedFailureDoesNotFailCheckout(t *testing.T) {
	repo := &fakeTxRepo{}
	feed := &fakeFeed{err: errors.New("redis down")}
	cart := filledCart()

	tx, err := newTestCheckout(repo, feed).Checkout(context.Background(), cart, testCashier, "Cash")

	require.NoError(t, err)
	assert.NotNil(t, tx)
	assert.True(t, cart.IsEmpty())
}

func TestCheckout_ItemsAreSnapshots(t *testing.T) {
	cart := filledCart()
	tx, err := newTestCheckout(&fakeTxRepo{}, nil).Checkout(context.Background(), cart, testCashier, "")
	require.NoError(t, err)

	cart.Add(ramen())
	assert.Equal(t, 2, tx.Items[0].Quantity)
	assert.Len(t, tx.Items, 2)
}
