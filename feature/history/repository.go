package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Filter narrows List.
type Filter struct {
	TargetDate string
	Status     Status
	Limit      int
}

// Repository stores saved reports.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the reports table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&SavedReport{})
}

// Create inserts report.
func (r *Repository) Create(ctx context.Context, report *SavedReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// List returns reports newest first.
func (r *Repository) List(ctx context.Context, f Filter) ([]SavedReport, error) {
	q := r.db.WithContext(ctx).Order("run_at DESC")
	if f.TargetDate != "" {
		q = q.Where("target_date = ?", f.TargetDate)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var reports []SavedReport
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Get returns the report with id.
func (r *Repository) Get(ctx context.Context, id string) (*SavedReport, error) {
	var report SavedReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}
	return &report, nil
}

// Update sets the given columns of report id.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&SavedReport{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update report %s: %w", id, res.Error)
	}
	return nil
}

// Delete removes report id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SavedReport{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
