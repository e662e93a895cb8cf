package repository

import (
	"context"
	"errors"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// ArtifactRepository handles artifact data operations. Artifacts are
// append-only; there are no update or delete operations.
type ArtifactRepository struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new ArtifactRepository.
func NewArtifactRepository(db *gorm.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Create inserts a new artifact record.
func (r *ArtifactRepository) Create(ctx context.Context, artifact *domain.Artifact) error {
	return r.db.WithContext(ctx).Create(artifact).Error
}

// GetByID retrieves an artifact belonging to a job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: owning job ID.
//   - id: artifact ID.
// Returns:
//   - *domain.Artifact: artifact record if found.
//   - error: domain.ErrArtifactNotFound if absent, otherwise the lookup error.
func (r *ArtifactRepository) GetByID(ctx context.Context, jobID, id string) (*domain.Artifact, error) {
	var artifact domain.Artifact
	if err := r.db.WithContext(ctx).
		First(&artifact, "id = ? AND job_id = ?", id, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, err
	}
	return &artifact, nil
}

// ListByJob returns a job's artifacts ordered newest-first by creation time.
func (r *ArtifactRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&artifacts).Error; err != nil {
		return nil, err
	}
	return artifacts, nil
}
