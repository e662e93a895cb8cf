package domain

import "time"

// Project groups render jobs. Projects are immutable once created; there is
// no update or delete operation.
type Project struct {
	ID            string    `gorm:"type:text;primaryKey" json:"id"`
	Title         string    `gorm:"type:text;not null" json:"title"`
	ReferenceNote string    `gorm:"type:text;not null" json:"reference_note"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for Project.
func (Project) TableName() string {
	return "projects"
}
