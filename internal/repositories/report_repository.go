package repositories

import (
	"context"
	"errors"
	"fmt"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReportNotFound        = errors.New("report not found")
	ErrReportDetailsNotFound = errors.New("report details not found")
)

// reportRepository implements ReportRepositoryInterface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepositoryInterface {
	return &reportRepository{
		db: db,
	}
}

// GetOrCreate returns the report row for (location, month, year), creating a
// draft one when it does not exist yet.
func (r *reportRepository) GetOrCreate(locationID string, month, year int) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("location_id = ? AND month = ? AND year = ?", locationID, month, year).
		First(&report).Error
	if err == nil {
		return &report, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	report = models.Report{
		LocationID: locationID,
		Month:      month,
		Year:       year,
		Status:     models.ReportStatusDraft,
	}
	if err := r.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// GetByID retrieves a report by ID
func (r *reportRepository) GetByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// UpdateStatus updates the report status
func (r *reportRepository) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.Report{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update report status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// GetDetails retrieves the cached snapshot of a report
func (r *reportRepository) GetDetails(reportID uuid.UUID) (*models.ReportDetails, error) {
	var details models.ReportDetails
	if err := r.db.First(&details, "report_id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportDetailsNotFound
		}
		return nil, fmt.Errorf("failed to get report details: %w", err)
	}
	return &details, nil
}

// UpsertDetails replaces the snapshot for a report. The write is a full
// replace keyed by report_id, so concurrent recomputations are safe.
func (r *reportRepository) UpsertDetails(details *models.ReportDetails) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "report_id"}},
		UpdateAll: true,
	}).Create(details).Error; err != nil {
		return fmt.Errorf("failed to upsert report details: %w", err)
	}
	return nil
}

// DeleteDetails invalidates the cached snapshot of a report
func (r *reportRepository) DeleteDetails(reportID uuid.UUID) error {
	if err := r.db.Delete(&models.ReportDetails{}, "report_id = ?", reportID).Error; err != nil {
		return fmt.Errorf("failed to delete report details: %w", err)
	}
	return nil
}

// GetLatestDetailsBefore returns the most recent snapshot of the location
// strictly before (year, month), or nils when no snapshot exists.
func (r *reportRepository) GetLatestDetailsBefore(ctx context.Context, locationID string, year, month int) (*models.Report, *models.ReportDetails, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Joins("JOIN report_details ON report_details.report_id = reports.id").
		Where("reports.location_id = ? AND (reports.year < ? OR (reports.year = ? AND reports.month < ?))",
			locationID, year, year, month).
		Order("reports.year DESC, reports.month DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get latest report snapshot: %w", err)
	}

	details, err := r.GetDetails(report.ID)
	if err != nil {
		return nil, nil, err
	}
	return &report, details, nil
}
