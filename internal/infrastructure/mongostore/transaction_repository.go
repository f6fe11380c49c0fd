package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a transaction repository over the transactions collection
func NewTransactionRepository(db *mongo.Database) domainRepo.TransactionRepository {
	return &transactionRepository{collection: db.Collection(database.CollectionTransactions)}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	res, err := r.collection.InsertOne(ctx, newTransactionDoc(tx))
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	tx.ID = oid.Hex()
	tx.CreatedAt = tx.CreatedAt.UTC().Truncate(time.Millisecond)
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var doc transactionDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	tx := doc.toEntity()
	return &tx, nil
}

func transactionFilter(f domainRepo.TransactionCursorFilterParams) bson.M {
	filter := bson.M{}
	createdBetween(filter, f.StartDate, f.EndDate)
	if f.Status != nil {
		filter["status"] = f.Status.String()
	}
	if f.CashierID != "" {
		filter["cashier_id"] = f.CashierID
	}
	return filter
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	filter := transactionFilter(domainRepo.TransactionCursorFilterParams{
		Status:    params.Status,
		CashierID: params.CashierID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	txs, err := r.find(ctx, filter, pageOptions(params.Pagination))
	return txs, total, err
}

// ListWithCursor returns transactions using cursor-based pagination
func (r *transactionRepository) ListWithCursor(ctx context.Context, params *domainRepo.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	filter, opts, err := keyset(transactionFilter(*params), params.Cursor, cursor)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter, opts)
}

func (r *transactionRepository) ListRange(ctx context.Context, start, end time.Time) ([]entity.Transaction, error) {
	filter := bson.M{}
	createdBetween(filter, &start, &end)
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *transactionRepository) ListRecent(ctx context.Context, limit int) ([]entity.Transaction, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *transactionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Transaction, error) {
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	txs := make([]entity.Transaction, 0, len(docs))
	for _, d := range docs {
		txs = append(txs, d.toEntity())
	}
	return txs, nil
}
