package repository

import (
	"context"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// ReviewRepository handles review data operations. Reviews are append-only.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review record.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByJob returns a job's reviews ordered newest-first by creation time.
func (r *ReviewRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
