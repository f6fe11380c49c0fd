package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates an order repository over the orders collection
func NewOrderRepository(db *mongo.Database) domainRepo.OrderRepository {
	return &orderRepository{collection: db.Collection(database.CollectionOrders)}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	res, err := r.collection.InsertOne(ctx, orderDoc{
		CustomerName: order.CustomerName,
		TotalPrice:   order.TotalPrice,
		Status:       order.Status,
		ItemCount:    order.ItemCount,
		CreatedAt:    order.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid.Hex()
	}
	return nil
}

func orderFilter(search, status string, start, end *time.Time) bson.M {
	filter := bson.M{}
	createdBetween(filter, start, end)
	if search != "" {
		filter["customer_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}
	if status != "" {
		filter["status"] = status
	}
	return filter
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	filter := orderFilter(params.Search, params.Status, params.StartDate, params.EndDate)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := r.find(ctx, filter, pageOptions(params.Pagination))
	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	filter, opts, err := keyset(orderFilter(params.Search, params.Status, params.StartDate, params.EndDate), params.Cursor, cursor)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter, opts)
}

func (r *orderRepository) ListRange(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	filter := bson.M{}
	createdBetween(filter, &start, &end)
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *orderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Order, error) {
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]entity.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toEntity())
	}
	return orders, nil
}
