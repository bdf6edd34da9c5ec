package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

// StockStore is the ledger of on-hand product quantities.
type StockStore interface {
	GetByID(ctx context.Context, id string) (*models.Stock, error)
	List(ctx context.Context) ([]models.Stock, error)
	Search(ctx context.Context, query string) ([]models.Stock, error)
	Insert(ctx context.Context, stock *models.Stock) error
	Update(ctx context.Context, id string, update models.StockUpdate) (*models.Stock, error)
	Delete(ctx context.Context, id string) error
	DecrementQuantity(ctx context.Context, id string, amount int) error
	IncrementQuantity(ctx context.Context, id string, amount int) error
}

// StockRepository implements StockStore on the stocks collection.
type StockRepository struct {
	coll *mongo.Collection
}

// GetByID fetches a single stock item.
func (r *StockRepository) GetByID(ctx context.Context, id string) (*models.Stock, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var stock models.Stock
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find stock %s: %w", id, err)
	}
	return &stock, nil
}

// List returns every stock item, newest first.
func (r *StockRepository) List(ctx context.Context) ([]models.Stock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	var stocks []models.Stock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, fmt.Errorf("decode stocks: %w", err)
	}
	return stocks, nil
}

// Search matches the query as a case-insensitive substring of name,
// description or category, or as an exact barcode. Results come back
// sorted by name ascending.
func (r *StockRepository) Search(ctx context.Context, query string) ([]models.Stock, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
		bson.M{"category": pattern},
		bson.M{"barcode": query},
	}}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search stocks: %w", err)
	}

	var stocks []models.Stock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, fmt.Errorf("decode stocks: %w", err)
	}
	return stocks, nil
}

// Insert stores a new stock item, assigning its id and timestamps.
func (r *StockRepository) Insert(ctx context.Context, stock *models.Stock) error {
	now := time.Now()
	if stock.ID.IsZero() {
		stock.ID = primitive.NewObjectID()
	}
	stock.CreatedAt = now
	stock.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, stock); err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// Update applies the non-nil fields and returns the updated document.
func (r *StockRepository) Update(ctx context.Context, id string, update models.StockUpdate) (*models.Stock, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Barcode != nil {
		set["barcode"] = *update.Barcode
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.ImageURL != nil {
		set["imageUrl"] = *update.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var stock models.Stock
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update stock %s: %w", id, err)
	}
	return &stock, nil
}

// Delete removes a stock item.
func (r *StockRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete stock %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DecrementQuantity atomically subtracts amount from the item's quantity,
// but only when at least that much is on hand. The filter carries the
// availability condition so two concurrent sales cannot oversell.
func (r *StockRepository) DecrementQuantity(ctx context.Context, id string, amount int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "quantity": bson.M{"$gte": amount}}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": -amount}})
	if err != nil {
		return fmt.Errorf("decrement stock %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the item is gone or it cannot cover the
	// amount. Re-read to report which.
	stock, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return &models.InsufficientStockError{ProductName: stock.Name, Available: stock.Quantity}
}

// IncrementQuantity adds amount back to the item's quantity. There is no
// upper bound on restored stock.
func (r *StockRepository) IncrementQuantity(ctx context.Context, id string, amount int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"quantity": amount}})
	if err != nil {
		return fmt.Errorf("increment stock %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
