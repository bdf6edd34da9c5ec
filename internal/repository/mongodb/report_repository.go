package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

// ReportStore persists nightly sales snapshots.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailySalesReport) error
}

// ReportRepository implements ReportStore on the daily_reports collection.
type ReportRepository struct {
	coll *mongo.Collection
}

// SaveDailyReport stores one daily sales report.
func (r *ReportRepository) SaveDailyReport(ctx context.Context, report models.DailySalesReport) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}
