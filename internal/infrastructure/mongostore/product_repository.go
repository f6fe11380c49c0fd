package mongostore

import (
	"context"
	"errors"
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

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository over the products collection
func NewProductRepository(db *mongo.Database) domainRepo.ProductRepository {
	return &productRepository{collection: db.Collection(database.CollectionProducts)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	now := time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, newProductDoc(product, now))
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	product.CreatedAt, product.UpdatedAt = now, now
	return nil
}

func (r *productRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		docs = append(docs, newProductDoc(&products[i], now))
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			products[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var doc productDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	p := doc.toEntity()
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
	}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.ActiveOnly {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]entity.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toEntity())
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
