package domain

import "time"

// AuditLog is one immutable, timestamped narrative record of something that
// happened to a job. Entries are append-only and ordered by creation time.
type AuditLog struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	JobID     string    `gorm:"type:text;not null;index" json:"job_id"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	Detail    string    `gorm:"type:text;not null" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}
