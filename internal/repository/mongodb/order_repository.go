package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	SellerID string
	Start    time.Time
	End      time.Time
	Status   models.OrderStatus
}

// OrderStore persists orders and their status changes.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error
}

// OrderRepository implements OrderStore on the orders collection.
type OrderRepository struct {
	coll *mongo.Collection
}

// Insert stores a new order, assigning its id and creation time.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches a single order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

// List returns matching orders, newest first.
func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := bson.M{}

	if filter.SellerID != "" {
		oid, err := objectID(filter.SellerID)
		if err != nil {
			// An unknown seller matches nothing rather than everything.
			return []models.Order{}, nil
		}
		query["soldBy"] = oid
	}

	createdAt := bson.M{}
	if !filter.Start.IsZero() {
		createdAt["$gte"] = filter.Start
	}
	if !filter.End.IsZero() {
		createdAt["$lt"] = filter.End
	}
	if len(createdAt) > 0 {
		query["createdAt"] = createdAt
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves the order from one status to another with a
// compare-and-swap on the current status, so two concurrent transitions
// cannot both succeed from the same stale read.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "status": from}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// CAS missed: the order is gone or someone moved it first.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return &models.InvalidTransitionError{From: current.Status, To: to}
}
