package repository

import (
	"context"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// BillingUsageRepository handles billing usage data operations. Rows are
// append-only; one per successful render with a measurable duration.
type BillingUsageRepository struct {
	db *gorm.DB
}

// NewBillingUsageRepository creates a new BillingUsageRepository.
func NewBillingUsageRepository(db *gorm.DB) *BillingUsageRepository {
	return &BillingUsageRepository{db: db}
}

// Create inserts a new billing usage record.
func (r *BillingUsageRepository) Create(ctx context.Context, usage *domain.BillingUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

// ListByJob returns a job's billing usage ordered newest-first by creation time.
func (r *BillingUsageRepository) ListByJob(ctx context.Context, jobID string) ([]domain.BillingUsage, error) {
	var usage []domain.BillingUsage
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&usage).Error; err != nil {
		return nil, err
	}
	return usage, nil
}
