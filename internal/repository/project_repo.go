package repository

import (
	"context"
	"errors"

	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

// ProjectRepository handles project data operations.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ProjectRepository: repository instance bound to db.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project record. Fails if the identity already exists.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: project ID.
// Returns:
//   - *domain.Project: project record if found.
//   - error: domain.ErrProjectNotFound if absent, otherwise the lookup error.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns all projects ordered newest-first by creation time.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
