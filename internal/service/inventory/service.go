package inventory

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
)

// Service manages the stock catalogue.
type Service struct {
	stocks mongodb.StockStore
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(stocks mongodb.StockStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stocks: stocks, logger: logger}
}

// CreateInput is the payload for a new stock item.
type CreateInput struct {
	Name        string  `json:"name"`
	Barcode     string  `json:"barcode"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

// Get fetches a single stock item.
func (s *Service) Get(ctx context.Context, id string) (*models.Stock, error) {
	return s.stocks.GetByID(ctx, id)
}

// Search returns items matching the query per the ledger's search contract.
// An empty query lists the whole catalogue.
func (s *Service) Search(ctx context.Context, query string) ([]models.Stock, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.stocks.List(ctx)
	}
	return s.stocks.Search(ctx, query)
}

// Create validates and stores a new stock item owned by the actor.
func (s *Service) Create(ctx context.Context, actor models.Principal, input CreateInput) (*models.Stock, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, models.NewValidationError("name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, models.NewValidationError("category is required")
	}
	if input.Price < 0 {
		return nil, models.NewValidationError("price must not be negative")
	}
	if input.Quantity < 0 {
		return nil, models.NewValidationError("quantity must not be negative")
	}

	createdBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, models.ErrForbidden
	}

	stock := &models.Stock{
		Name:        strings.TrimSpace(input.Name),
		Barcode:     strings.TrimSpace(input.Barcode),
		Description: strings.TrimSpace(input.Description),
		Quantity:    input.Quantity,
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		ImageURL:    input.ImageURL,
		CreatedBy:   createdBy,
	}
	if err := s.stocks.Insert(ctx, stock); err != nil {
		return nil, err
	}

	s.logger.Info("stock item created",
		zap.String("stock_id", stock.ID.Hex()),
		zap.String("name", stock.Name),
		zap.Int("quantity", stock.Quantity))
	return stock, nil
}

// Update applies a partial update to a stock item.
func (s *Service) Update(ctx context.Context, id string, update models.StockUpdate) (*models.Stock, error) {
	if update.Price != nil && *update.Price < 0 {
		return nil, models.NewValidationError("price must not be negative")
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, models.NewValidationError("quantity must not be negative")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, models.NewValidationError("name must not be empty")
	}

	return s.stocks.Update(ctx, id, update)
}

// Delete removes a stock item. Historical orders keep their name and price
// snapshots, so deletion does not rewrite the past.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.stocks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("stock item deleted", zap.String("stock_id", id))
	return nil
}
