package repository

import (
	"context"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// AuditLogRepository handles audit log data operations. Entries are
// append-only and form the job's narrative history.
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository.
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create inserts a new audit log entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByJob returns a job's audit entries ordered newest-first by creation time.
func (r *AuditLogRepository) ListByJob(ctx context.Context, jobID string) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
