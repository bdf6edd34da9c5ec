package orders

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
)

const dateLayout = "2006-01-02"

// totalsEpsilon absorbs float rounding when verifying caller-supplied
// money amounts against recomputed ones.
const totalsEpsilon = 0.005

// Service creates orders against the stock ledger and drives their status
// workflow, applying the stock side effects certain transitions carry.
type Service struct {
	orders mongodb.OrderStore
	stocks mongodb.StockStore
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a new order service instance. The location defines the
// calendar-day boundaries used by date filters and summaries.
func NewService(orders mongodb.OrderStore, stocks mongodb.StockStore, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, stocks: stocks, loc: loc, logger: logger}
}

// CreateInput is the payload for a new order.
type CreateInput struct {
	Items         []models.OrderItem   `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Status        models.OrderStatus   `json:"status"`
	CustomerName  string               `json:"customerName"`
}

// DaySummary is the admin read-side projection for one calendar day.
type DaySummary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// PeriodStats aggregates completed sales over a period.
type PeriodStats struct {
	Sales float64 `json:"sales"`
	Count int     `json:"count"`
}

// Stats is the dashboard projection: today plus the trailing seven days.
type Stats struct {
	Today PeriodStats `json:"today"`
	Week  PeriodStats `json:"week"`
}

// Create validates the order, verifies and commits stock for every line
// item, then persists the order. Stock application is all-or-nothing: a
// failed decrement rolls back every decrement already applied.
func (s *Service) Create(ctx context.Context, actor models.Principal, input CreateInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, models.NewValidationError("order must contain at least one item")
	}

	soldBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, models.ErrForbidden
	}

	if err := verifyTotals(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		Items:         input.Items,
		Subtotal:      input.Subtotal,
		Tax:           input.Tax,
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		CustomerName:  input.CustomerName,
		SoldBy:        soldBy,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentCash
	}
	if !order.PaymentMethod.Valid() {
		return nil, models.NewValidationError("invalid payment method %q", order.PaymentMethod)
	}
	if order.Status == "" {
		order.Status = models.StatusCompleted
	}
	if !order.Status.Valid() {
		return nil, models.NewValidationError("invalid status %q", order.Status)
	}
	if order.CustomerName == "" {
		order.CustomerName = models.DefaultCustomerName
	}

	// First pass: check availability for every line item before touching
	// anything, so a shortage on the last item leaves no trace.
	for _, item := range order.Items {
		stock, err := s.stocks.GetByID(ctx, item.ProductID.Hex())
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("product %s not found in inventory", item.ProductName)
		}
		if err != nil {
			return nil, err
		}
		if stock.Quantity < item.Quantity {
			return nil, &models.InsufficientStockError{ProductName: stock.Name, Available: stock.Quantity}
		}
	}

	// Second pass: commit through conditional decrements. A concurrent
	// sale can still win the race on one item, in which case every
	// decrement applied so far is restored.
	if err := s.decrementAll(ctx, order.Items); err != nil {
		return nil, err
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.restoreAll(ctx, order.Items)
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("sold_by", actor.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total))
	return order, nil
}

// Get returns a single order visible to the actor.
func (s *Service) Get(ctx context.Context, actor models.Principal, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.SoldBy.Hex() != actor.ID {
		return nil, models.ErrForbidden
	}
	return order, nil
}

// List returns orders newest first. The optional date narrows results to
// one calendar day; the seller filter is honored for admins only, and
// non-admins always see just their own orders.
func (s *Service) List(ctx context.Context, actor models.Principal, date string, sellerID string) ([]models.Order, error) {
	filter := mongodb.OrderFilter{}

	if date != "" {
		day, err := time.ParseInLocation(dateLayout, date, s.loc)
		if err != nil {
			return nil, models.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
		}
		filter.Start = day
		filter.End = day.AddDate(0, 0, 1)
	}

	if actor.IsAdmin() {
		filter.SellerID = sellerID
	} else {
		filter.SellerID = actor.ID
	}

	return s.orders.List(ctx, filter)
}

// UpdateStatus moves an order through the workflow and applies the stock
// side effects tied to the (old, new) status pair. A failed re-validation
// or a lost status race leaves both the order and the ledger unchanged.
func (s *Service) UpdateStatus(ctx context.Context, actor models.Principal, id string, next models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.SoldBy.Hex() != actor.ID {
		return nil, models.ErrForbidden
	}
	if !next.Valid() {
		return nil, models.NewValidationError("valid status is required")
	}
	if !order.Status.CanTransitionTo(next, actor.Role) {
		return nil, &models.InvalidTransitionError{From: order.Status, To: next}
	}

	switch {
	case order.Status == models.StatusCompleted && next == models.StatusCancelled:
		// Claim the status first so two concurrent cancellations cannot
		// both restore stock.
		if err := s.orders.UpdateStatus(ctx, id, order.Status, next); err != nil {
			return nil, err
		}
		s.restoreAll(ctx, order.Items)

	case order.Status == models.StatusCancelled && next == models.StatusCompleted:
		if err := s.rededuct(ctx, id, order, next); err != nil {
			return nil, err
		}

	default:
		if err := s.orders.UpdateStatus(ctx, id, order.Status, next); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))
	order.Status = next
	return order, nil
}

// rededuct re-validates availability for every line item, decrements the
// ledger and then commits the status flip. Any failure along the way
// compensates whatever was already applied.
func (s *Service) rededuct(ctx context.Context, id string, order *models.Order, next models.OrderStatus) error {
	// Items whose stock record has since been deleted are skipped: the
	// product no longer exists, so there is nothing to deduct.
	present := make([]models.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		stock, err := s.stocks.GetByID(ctx, item.ProductID.Hex())
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if stock.Quantity < item.Quantity {
			return &models.InsufficientStockError{ProductName: stock.Name, Available: stock.Quantity}
		}
		present = append(present, item)
	}

	if err := s.decrementAll(ctx, present); err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, id, order.Status, next); err != nil {
		s.restoreAll(ctx, present)
		return err
	}
	return nil
}

// decrementAll applies conditional decrements for every item. On failure
// the decrements already applied are rolled back before returning.
func (s *Service) decrementAll(ctx context.Context, items []models.OrderItem) error {
	for i, item := range items {
		if err := s.stocks.DecrementQuantity(ctx, item.ProductID.Hex(), item.Quantity); err != nil {
			s.restoreAll(ctx, items[:i])
			return err
		}
	}
	return nil
}

// restoreAll increments stock back for the given items. Items whose stock
// record disappeared are skipped; other failures are logged and the rest
// of the restore still runs.
func (s *Service) restoreAll(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		err := s.stocks.IncrementQuantity(ctx, item.ProductID.Hex(), item.Quantity)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to restore stock",
				zap.String("product_id", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// Summary computes count and total value of completed orders for one
// calendar day (today when no date is given). Admin only.
func (s *Service) Summary(ctx context.Context, actor models.Principal, date string) (*DaySummary, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}

	var day time.Time
	if date == "" {
		day = dayStart(time.Now(), s.loc)
	} else {
		parsed, err := time.ParseInLocation(dateLayout, date, s.loc)
		if err != nil {
			return nil, models.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
		}
		day = parsed
	}

	matched, err := s.orders.List(ctx, mongodb.OrderFilter{
		Start:  day,
		End:    day.AddDate(0, 0, 1),
		Status: models.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{Count: len(matched)}
	for _, order := range matched {
		summary.TotalValue += order.Total
	}
	return summary, nil
}

// Stats returns the dashboard projection: completed sales for today and
// for the trailing seven days. Admin only.
func (s *Service) Stats(ctx context.Context, actor models.Principal) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}

	now := time.Now()
	today := dayStart(now, s.loc)
	weekStart := today.AddDate(0, 0, -7)

	weekOrders, err := s.orders.List(ctx, mongodb.OrderFilter{
		Start:  weekStart,
		Status: models.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, order := range weekOrders {
		stats.Week.Count++
		stats.Week.Sales += order.Total
		if !order.CreatedAt.Before(today) {
			stats.Today.Count++
			stats.Today.Sales += order.Total
		}
	}
	return stats, nil
}

// verifyTotals recomputes every money amount from the line items and
// rejects any disagreement with the caller-supplied figures. The original
// point-of-sale backend trusted the client here; this closes that gap.
func verifyTotals(input CreateInput) error {
	var subtotal float64
	for _, item := range input.Items {
		if item.ProductID.IsZero() {
			return models.NewValidationError("order item is missing a product id")
		}
		if item.ProductName == "" {
			return models.NewValidationError("order item is missing a product name")
		}
		if item.Quantity < 1 {
			return models.NewValidationError("quantity for %s must be at least 1", item.ProductName)
		}
		if item.Price < 0 {
			return models.NewValidationError("price for %s must not be negative", item.ProductName)
		}

		expected := item.Price * float64(item.Quantity)
		if math.Abs(expected - item.Subtotal) > totalsEpsilon {
			return models.NewValidationError("subtotal for %s does not match quantity × price", item.ProductName)
		}
		subtotal += expected
	}

	if input.Tax < 0 {
		return models.NewValidationError("tax must not be negative")
	}
	if math.Abs(subtotal-input.Subtotal) > totalsEpsilon {
		return models.NewValidationError("order subtotal does not match the sum of line items")
	}
	if math.Abs(input.Subtotal+input.Tax-input.Total) > totalsEpsilon {
		return models.NewValidationError("order total does not match subtotal plus tax")
	}
	return nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
