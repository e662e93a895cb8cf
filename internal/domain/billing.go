package domain

import "time"

// BillingUsage records the measured output duration of one successful render,
// for downstream cost accounting. Append-only; one row per render that
// yielded a measurable duration.
type BillingUsage struct {
	ID              string    `gorm:"type:text;primaryKey" json:"id"`
	JobID           string    `gorm:"type:text;not null;index" json:"job_id"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for BillingUsage.
func (BillingUsage) TableName() string {
	return "billing_usage"
}
