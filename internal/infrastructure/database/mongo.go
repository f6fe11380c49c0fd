package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollectionProducts       = "products"
	CollectionOrders         = "orders"
	CollectionTransactions   = "transactions"
	CollectionMonthlyReports = "monthly_reports"
)

// ConnectMongoDB connects and pings the server, returning the named database
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(5)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Str("database", database).Msg("connected to MongoDB")
	return client.Database(database), nil
}

// EnsureMongoIndexes creates the indexes the report and history queries rely on
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	byCreated := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
	}

	if _, err := db.Collection(CollectionTransactions).Indexes().CreateMany(ctx, append(byCreated,
		mongo.IndexModel{Keys: bson.D{{Key: "cashier_id", Value: 1}, {Key: "created_at", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}},
	)); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	if _, err := db.Collection(CollectionOrders).Indexes().CreateMany(ctx, byCreated); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	if _, err := db.Collection(CollectionProducts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	if _, err := db.Collection(CollectionMonthlyReports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create monthly report indexes: %w", err)
	}

	return nil
}
