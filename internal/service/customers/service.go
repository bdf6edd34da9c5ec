package customers

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
)

// Service manages the customer book. Representatives only ever see the
// customers they added; admins see everyone.
type Service struct {
	customers mongodb.CustomerStore
	logger    *zap.Logger
}

// NewService wires a new customer service instance.
func NewService(customers mongodb.CustomerStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{customers: customers, logger: logger}
}

// CreateInput is the payload for a new customer.
type CreateInput struct {
	Name        string  `json:"name"`
	Route       string  `json:"route"`
	Telephone   string  `json:"telephone"`
	CreditLimit float64 `json:"creditLimit"`
}

// Create stores a new customer owned by the actor. Credits start at zero.
func (s *Service) Create(ctx context.Context, actor models.Principal, input CreateInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, models.NewValidationError("customer name is required")
	}
	if strings.TrimSpace(input.Telephone) == "" {
		return nil, models.NewValidationError("telephone number is required")
	}

	addedBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, models.ErrForbidden
	}

	customer := &models.Customer{
		Name:           strings.TrimSpace(input.Name),
		Route:          strings.TrimSpace(input.Route),
		Telephone:      strings.TrimSpace(input.Telephone),
		CreditLimit:    input.CreditLimit,
		CurrentCredits: 0,
		AddedBy:        addedBy,
	}
	if err := s.customers.Insert(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.Hex()),
		zap.String("added_by", actor.ID))
	return customer, nil
}

// List returns customers visible to the actor.
func (s *Service) List(ctx context.Context, actor models.Principal) ([]models.Customer, error) {
	if actor.IsAdmin() {
		return s.customers.List(ctx, "")
	}
	return s.customers.List(ctx, actor.ID)
}

// Get returns one customer if the actor may see it.
func (s *Service) Get(ctx context.Context, actor models.Principal, id string) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && customer.AddedBy.Hex() != actor.ID {
		return nil, models.ErrForbidden
	}
	return customer, nil
}

// Update applies a partial update. Representatives may only touch their own
// customers, and only admins may set the outstanding credit amount.
func (s *Service) Update(ctx context.Context, actor models.Principal, id string, update models.CustomerUpdate) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && customer.AddedBy.Hex() != actor.ID {
		return nil, models.ErrForbidden
	}

	if !actor.IsAdmin() {
		update.CurrentCredits = nil
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, models.NewValidationError("customer name must not be empty")
	}
	if update.Telephone != nil && strings.TrimSpace(*update.Telephone) == "" {
		return nil, models.NewValidationError("telephone number must not be empty")
	}

	return s.customers.Update(ctx, id, update)
}

// Delete removes a customer. Admin only.
func (s *Service) Delete(ctx context.Context, actor models.Principal, id string) error {
	if !actor.IsAdmin() {
		return models.ErrForbidden
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
