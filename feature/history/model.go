package history

import (
	"time"

	"order-reconciler/core/reconcile"
	"order-reconciler/feature/fulfillment"
)

// Status is the review state of a saved report.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusReviewed Status = "REVIEWED"
	StatusResolved Status = "RESOLVED"
)

// SavedReport is a reconciliation run kept for review.
type SavedReport struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TargetDate string    `gorm:"size:10;index" json:"targetDate"`
	RunBy      string    `gorm:"size:100" json:"runBy"`
	RunAt      time.Time `gorm:"index" json:"runAt"`
	// Overall is the worst severity across Results.
	Overall reconcile.Severity           `gorm:"size:16" json:"overallStatus"`
	Results []fulfillment.PlatformReport `gorm:"type:text;serializer:json" json:"results"`
	Note    string                       `gorm:"type:text" json:"note"`
	Status  Status                       `gorm:"size:16;index" json:"status"`
}

// TableName pins the table name.
func (SavedReport) TableName() string {
	return "saved_reports"
}
