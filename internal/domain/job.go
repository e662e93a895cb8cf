package domain

import "time"

// Job is the central mutable entity: one unit of render work tracked from
// intake through approval or failure. Status is always a member of the
// JobStatus enum and ProgressPercent is derived from it, never set
// independently. UpdatedAt strictly increases with every status change.
type Job struct {
	ID                    string    `gorm:"type:text;primaryKey" json:"id"`
	ProjectID             string    `gorm:"type:text;not null;index" json:"project_id"`
	Title                 string    `gorm:"type:text;not null" json:"title"`
	Purpose               string    `gorm:"type:text;not null" json:"purpose"`
	Tone                  string    `gorm:"type:text;not null" json:"tone"`
	TargetDurationSeconds int       `gorm:"not null" json:"target_duration_seconds"`
	Status                JobStatus `gorm:"type:text;not null;index" json:"status"`
	ProgressPercent       int       `gorm:"not null" json:"progress_percent"`
	OutputDurationSeconds *int      `json:"output_duration_seconds"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string {
	return "jobs"
}
