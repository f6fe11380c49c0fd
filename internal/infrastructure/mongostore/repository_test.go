package mongostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"github.com/injapanfood/pos-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// skipWithoutDocker skips t when no container runtime is reachable.
// SkipIfProviderIsNotHealthy panics instead of skipping when there is no Docker host at all.
func skipWithoutDocker(t *testing.T) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("docker is not available: %v", r)
		}
	}()
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// setupMongo starts one MongoDB container and returns a connect func handing out
// a fresh database per caller.
func setupMongo(t *testing.T) func(t *testing.T) *mongo.Database {
	skipWithoutDocker(t)
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	return func(t *testing.T) *mongo.Database {
		db, err := database.ConnectMongoDB(ctx, uri, fmt.Sprintf("test_%d", time.Now().UnixNano()))
		require.NoError(t, err)
		require.NoError(t, database.EnsureMongoIndexes(ctx, db))
		t.Cleanup(func() {
			_ = db.Drop(ctx)
			_ = db.Client().Disconnect(ctx)
		})
		return db
	}
}

var base = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func newTransaction(cashierID string, at time.Time) *entity.Transaction {
	return &entity.Transaction{
		Items: []entity.TransactionItem{
			{ProductID: "p1", Name: "Tonkotsu Ramen", UnitPrice: 980, Quantity: 1},
			{ProductID: "p2", Name: "Gyoza (6 pcs)", UnitPrice: 380, Quantity: 2},
		},
		TotalAmount:   1740,
		CashierID:     cashierID,
		CashierName:   "Hana",
		Status:        enum.TransactionStatusCompleted,
		PaymentMethod: "Cash",
		CreatedAt:     at,
	}
}

func TestMongoStore(t *testing.T) {
	connect := setupMongo(t)
	ctx := context.Background()

	t.Run("transaction create and get", func(t *testing.T) {
		repo := NewTransactionRepository(connect(t))

		tx := newTransaction("c1", base.Add(10*time.Hour))
		require.NoError(t, repo.Create(ctx, tx))
		require.Len(t, tx.ID, 24)

		got, err := repo.GetByID(ctx, tx.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tx.ID, got.ID)
		assert.Equal(t, int64(1740), got.TotalAmount)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Tonkotsu Ramen", got.Items[0].Name)
		assert.Equal(t, 2, got.Items[1].Quantity)
		assert.True(t, tx.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("transaction get unknown ids", func(t *testing.T) {
		repo := NewTransactionRepository(connect(t))

		got, err := repo.GetByID(ctx, "not-an-object-id")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByID(ctx, "65f000000000000000000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("transaction range is half open", func(t *testing.T) {
		repo := NewTransactionRepository(connect(t))

		for _, at := range []time.Time{base.Add(-time.Millisecond), base, base.Add(23 * time.Hour), base.Add(24 * time.Hour)} {
			require.NoError(t, repo.Create(ctx, newTransaction("c1", at)))
		}

		txs, err := repo.ListRange(ctx, base, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.True(t, txs[0].CreatedAt.Equal(base))
	})

	t.Run("transaction list filters and cursor", func(t *testing.T) {
		repo := NewTransactionRepository(connect(t))

		for i := 0; i < 5; i++ {
			require.NoError(t, repo.Create(ctx, newTransaction("c1", base.Add(time.Duration(i)*time.Minute))))
		}
		require.NoError(t, repo.Create(ctx, newTransaction("c2", base.Add(90*time.Second))))

		txs, total, err := repo.List(ctx, &domainRepo.TransactionFilterParams{
			Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2},
			CashierID:  "c1",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, txs, 2)
		assert.True(t, txs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

		getID := func(tx entity.Transaction) string { return tx.ID }
		getCreatedAt := func(tx entity.Transaction) time.Time { return tx.CreatedAt }

		first := &pagination.CursorParams{Limit: 3}
		raw, err := repo.ListWithCursor(ctx, &domainRepo.TransactionCursorFilterParams{Cursor: first, CashierID: "c1"})
		require.NoError(t, err)
		page, items := pagination.NewCursorPagination(raw, first, getID, getCreatedAt)
		require.Len(t, items, 3)
		assert.True(t, page.HasNext)

		next := &pagination.CursorParams{Limit: 3, Cursor: *page.NextCursor}
		raw, err = repo.ListWithCursor(ctx, &domainRepo.TransactionCursorFilterParams{Cursor: next, CashierID: "c1"})
		require.NoError(t, err)
		page2, items2 := pagination.NewCursorPagination(raw, next, getID, getCreatedAt)
		require.Len(t, items2, 2)
		assert.False(t, page2.HasNext)
		assert.True(t, items2[1].CreatedAt.Equal(base))
	})

	t.Run("transaction recent", func(t *testing.T) {
		repo := NewTransactionRepository(connect(t))
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, newTransaction("c1", base.Add(time.Duration(i)*time.Hour))))
		}

		txs, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.True(t, txs[0].CreatedAt.Equal(base.Add(2*time.Hour)))
	})

	t.Run("orders", func(t *testing.T) {
		repo := NewOrderRepository(connect(t))

		for i, name := range []string{"Yuki Tanaka", "Kenji Sato", "Aiko Tanaka"} {
			require.NoError(t, repo.Create(ctx, &entity.Order{
				CustomerName: name,
				TotalPrice:   int64(1000 * (i + 1)),
				Status:       "completed",
				ItemCount:    i + 1,
				CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			}))
		}

		found, total, err := repo.List(ctx, &domainRepo.OrderFilterParams{
			Pagination: pagination.DefaultPagination(),
			Search:     "tanaka",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "Aiko Tanaka", found[0].CustomerName)

		ranged, err := repo.ListRange(ctx, base.Add(time.Hour), base.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Len(t, ranged, 2)
	})

	t.Run("products and seeding", func(t *testing.T) {
		repo := NewProductRepository(connect(t))

		require.NoError(t, database.SeedCatalog(ctx, repo))
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(database.DefaultCatalog())), count)

		drinks, err := repo.List(ctx, &domainRepo.ProductFilterParams{Category: "Drinks", ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, drinks, 3)

		got, err := repo.GetByID(ctx, drinks[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, drinks[0].Name, got.Name)
	})

	t.Run("monthly report upsert", func(t *testing.T) {
		repo := NewMonthlyReportRepository(connect(t))

		months := make([]entity.MonthlyAggregate, 12)
		months[0] = entity.MonthlyAggregate{Month: 0, Year: 2024, TotalSales: 1, TotalRevenue: 500}
		require.NoError(t, repo.Save(ctx, &entity.MonthlyReport{Year: 2024, Months: months, ComputedAt: base}))

		months[0].TotalSales = 7
		require.NoError(t, repo.Save(ctx, &entity.MonthlyReport{Year: 2024, Months: months, ComputedAt: base}))

		got, err := repo.GetByYear(ctx, 2024)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), got.Months[0].TotalSales)

		none, err := repo.GetByYear(ctx, 1999)
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}
