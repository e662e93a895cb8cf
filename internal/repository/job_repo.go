package repository

import (
	"context"
	"errors"
	"time"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// JobRepository handles render job data operations. Transition legality is
// the caller's responsibility; this layer only persists.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *JobRepository: repository instance bound to db.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job record. Fails if the identity already exists.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
// Returns:
//   - *domain.Job: job record if found.
//   - error: domain.ErrJobNotFound if absent, otherwise the lookup error.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ListByProject returns a project's jobs ordered newest-first by creation time.
func (r *JobRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAll returns every job ordered newest-first by creation time.
func (r *JobRepository) ListAll(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateStatus writes status, progress, and updated_at as a single atomic
// UPDATE and returns the refreshed record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
//   - status: new status value.
//   - progress: progress derived from status.
//   - updatedAt: update timestamp; must move forward on every status change.
// Returns:
//   - *domain.Job: updated job record.
//   - error: domain.ErrJobNotFound if the id no longer exists.
func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, progress int, updatedAt time.Time) (*domain.Job, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"progress_percent": progress,
			"updated_at":       updatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrJobNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateOutputDuration persists the probed output duration on a job.
func (r *JobRepository) UpdateOutputDuration(ctx context.Context, id string, seconds int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Update("output_duration_seconds", seconds)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
