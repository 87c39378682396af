package repository

import (
	"context"

	"gorm.io/gorm"

	"cupid-backend/internal/db"
)

// ReportRepository provides data access for moderation reports.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new repository bound to the given DB connection.
func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{db: database}
}

// Create files a new report.
func (r *ReportRepository) Create(ctx context.Context, report *db.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// ListByStatus returns reports for the admin queue, oldest first.
func (r *ReportRepository) ListByStatus(ctx context.Context, status string) ([]db.Report, error) {
	var reports []db.Report
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&reports).Error
	return reports, err
}

// ListByReporter returns the reports a user has filed, newest first.
func (r *ReportRepository) ListByReporter(ctx context.Context, reporterID uint64) ([]db.Report, error) {
	var reports []db.Report
	err := r.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// SetStatus moves a report through the moderation lifecycle.
func (r *ReportRepository) SetStatus(ctx context.Context, reportID uint64, status string) error {
	res := r.db.WithContext(ctx).
		Model(&db.Report{}).
		Where("id = ?", reportID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
