package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
	"github.com/dilshanuk/salespoint/internal/repository/sheets"
)

// Service builds daily sales snapshots from the order history.
type Service struct {
	orders  mongodb.OrderStore
	reports mongodb.ReportStore
	sheets  sheets.Repository
	loc     *time.Location
	logger  *zap.Logger
}

// NewService wires a new reporting service instance. The sheets repository
// may be nil, in which case reports are only stored in MongoDB.
func NewService(orders mongodb.OrderStore, reports mongodb.ReportStore, sheetsRepo sheets.Repository, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, reports: reports, sheets: sheetsRepo, loc: loc, logger: logger}
}

// GenerateDailyReport aggregates the completed orders of the calendar day
// containing the given time, persists the snapshot and exports it to the
// spreadsheet when one is configured.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) (*models.DailySalesReport, error) {
	year, month, dom := day.In(s.loc).Date()
	start := time.Date(year, month, dom, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	completed, err := s.orders.List(ctx, mongodb.OrderFilter{
		Start:  start,
		End:    end,
		Status: models.StatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("load completed orders: %w", err)
	}

	report := models.DailySalesReport{
		Date:        start,
		OrderCount:  len(completed),
		GeneratedAt: time.Now(),
	}
	for _, order := range completed {
		report.SalesTotal += order.Total
	}

	if err := s.reports.SaveDailyReport(ctx, report); err != nil {
		return nil, err
	}

	if s.sheets != nil {
		if err := s.sheets.AppendDailyReport(ctx, report); err != nil {
			// The snapshot is already stored; the export is best effort.
			s.logger.Error("failed to export daily report to sheet", zap.Error(err))
		}
	}

	s.logger.Info("daily sales report generated",
		zap.Time("date", report.Date),
		zap.Int("orders", report.OrderCount),
		zap.Float64("sales_total", report.SalesTotal))
	return &report, nil
}
