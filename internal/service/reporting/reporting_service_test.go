package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
)

type fakeOrderStore struct {
	orders []models.Order
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, _ string) (*models.Order, error) {
	return nil, models.ErrNotFound
}

func (f *fakeOrderStore) List(_ context.Context, filter mongodb.OrderFilter) ([]models.Order, error) {
	result := []models.Order{}
	for _, order := range f.orders {
		if !filter.Start.IsZero() && order.CreatedAt.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && !order.CreatedAt.Before(filter.End) {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, _ string, _, _ models.OrderStatus) error {
	return models.ErrNotFound
}

type fakeReportStore struct {
	saved []models.DailySalesReport
}

func (f *fakeReportStore) SaveDailyReport(_ context.Context, report models.DailySalesReport) error {
	f.saved = append(f.saved, report)
	return nil
}

type fakeSheetRepo struct {
	appended []models.DailySalesReport
	err      error
}

func (f *fakeSheetRepo) AppendDailyReport(_ context.Context, report models.DailySalesReport) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, report)
	return nil
}

func completedOrder(total float64, at time.Time) models.Order {
	return models.Order{
		ID:        primitive.NewObjectID(),
		Status:    models.StatusCompleted,
		Total:     total,
		SoldBy:    primitive.NewObjectID(),
		CreatedAt: at,
	}
}

func TestGenerateDailyReport(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	orderStore := &fakeOrderStore{orders: []models.Order{
		completedOrder(120, day.Add(9*time.Hour)),
		completedOrder(80, day.Add(20*time.Hour)),
		completedOrder(999, day.AddDate(0, 0, 1)),
		{Status: models.StatusCancelled, Total: 55, CreatedAt: day.Add(12 * time.Hour)},
	}}
	reportStore := &fakeReportStore{}
	sheetRepo := &fakeSheetRepo{}
	svc := NewService(orderStore, reportStore, sheetRepo, time.UTC, nil)

	report, err := svc.GenerateDailyReport(context.Background(), day.Add(15*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, day, report.Date)
	assert.Equal(t, 2, report.OrderCount)
	assert.InDelta(t, 200, report.SalesTotal, 0.001)
	assert.False(t, report.GeneratedAt.IsZero())

	require.Len(t, reportStore.saved, 1)
	require.Len(t, sheetRepo.appended, 1)
	assert.Equal(t, report.OrderCount, sheetRepo.appended[0].OrderCount)
}

func TestGenerateDailyReportEmptyDay(t *testing.T) {
	svc := NewService(&fakeOrderStore{}, &fakeReportStore{}, nil, time.UTC, nil)

	report, err := svc.GenerateDailyReport(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, report.OrderCount)
	assert.Zero(t, report.SalesTotal)
}

func TestGenerateDailyReportSheetFailureIsBestEffort(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	orderStore := &fakeOrderStore{orders: []models.Order{completedOrder(120, day.Add(time.Hour))}}
	reportStore := &fakeReportStore{}
	sheetRepo := &fakeSheetRepo{err: errors.New("quota exceeded")}
	svc := NewService(orderStore, reportStore, sheetRepo, time.UTC, nil)

	report, err := svc.GenerateDailyReport(context.Background(), day)

	require.NoError(t, err, "a failed export must not fail the snapshot")
	assert.Equal(t, 1, report.OrderCount)
	assert.Len(t, reportStore.saved, 1)
}
