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

// CustomerStore persists customers.
type CustomerStore interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, addedBy string) ([]models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id string, update models.CustomerUpdate) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

// CustomerRepository implements CustomerStore on the customers collection.
type CustomerRepository struct {
	coll *mongo.Collection
}

// GetByID fetches a single customer.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer %s: %w", id, err)
	}
	return &customer, nil
}

// List returns customers, optionally restricted to one creator.
func (r *CustomerRepository) List(ctx context.Context, addedBy string) ([]models.Customer, error) {
	query := bson.M{}
	if addedBy != "" {
		oid, err := objectID(addedBy)
		if err != nil {
			return []models.Customer{}, nil
		}
		query["addedBy"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return customers, nil
}

// Insert stores a new customer. A telephone collision surfaces as a
// DuplicateError.
func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, customer)
	if mongo.IsDuplicateKeyError(err) {
		return &models.DuplicateError{Message: "customer with this telephone already exists"}
	}
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update applies the non-nil fields and returns the updated document.
func (r *CustomerRepository) Update(ctx context.Context, id string, update models.CustomerUpdate) (*models.Customer, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Route != nil {
		set["route"] = *update.Route
	}
	if update.Telephone != nil {
		set["telephone"] = *update.Telephone
	}
	if update.CreditLimit != nil {
		set["creditLimit"] = *update.CreditLimit
	}
	if update.CurrentCredits != nil {
		set["currentCredits"] = *update.CurrentCredits
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var customer models.Customer
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, &models.DuplicateError{Message: "customer with this telephone already exists"}
	}
	if err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return &customer, nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
