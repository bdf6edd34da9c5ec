package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

const (
	usersCollection     = "users"
	stocksCollection    = "stocks"
	ordersCollection    = "orders"
	customersCollection = "customers"
	reportsCollection   = "daily_reports"
)

// Repository owns the MongoDB client and hands out per-collection stores.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the unique and lookup indexes the application
// relies on. Safe to call on every startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	_, err = r.db.Collection(customersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "telephone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create customer indexes: %w", err)
	}

	_, err = r.db.Collection(stocksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "barcode", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create stock indexes: %w", err)
	}

	_, err = r.db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}

	return nil
}

// Users returns the user store.
func (r *Repository) Users() *UserRepository {
	return &UserRepository{coll: r.db.Collection(usersCollection)}
}

// Stocks returns the stock store.
func (r *Repository) Stocks() *StockRepository {
	return &StockRepository{coll: r.db.Collection(stocksCollection)}
}

// Orders returns the order store.
func (r *Repository) Orders() *OrderRepository {
	return &OrderRepository{coll: r.db.Collection(ordersCollection)}
}

// Customers returns the customer store.
func (r *Repository) Customers() *CustomerRepository {
	return &CustomerRepository{coll: r.db.Collection(customersCollection)}
}

// Reports returns the daily report store.
func (r *Repository) Reports() *ReportRepository {
	return &ReportRepository{coll: r.db.Collection(reportsCollection)}
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// objectID parses a hex id. Malformed ids are indistinguishable from
// unknown ones to callers, so both map to ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}
