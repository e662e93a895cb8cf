package domain

import "time"

// Review decisions accepted by the review gate.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Review is one human approve/reject decision on a job. Append-only; a job
// may accumulate several records but only a decision that satisfies a legal
// transition changes job status.
type Review struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	JobID     string    `gorm:"type:text;not null;index" json:"job_id"`
	Decision  string    `gorm:"type:text;not null" json:"decision"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string {
	return "job_reviews"
}
