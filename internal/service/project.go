package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/repository"
)

// defaultProjectTitle is used when a job is created without an explicit
// project; the first existing project is reused.
const defaultProjectTitle = "Default Project"

// ProjectService handles project creation and lookup. Projects are
// immutable once created.
type ProjectService struct {
	projects *repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create inserts a new project.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - title: project title.
//   - referenceNote: free-text note.
// Returns:
//   - *domain.Project: created project record.
//   - error: non-nil if the insert fails.
func (s *ProjectService) Create(ctx context.Context, title, referenceNote string) (*domain.Project, error) {
	project := &domain.Project{
		ID:            uuid.New().String(),
		Title:         title,
		ReferenceNote: referenceNote,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// DefaultProject returns the most recent project, creating one when none
// exists. Jobs created without an explicit project land here.
func (s *ProjectService) DefaultProject(ctx context.Context) (*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) > 0 {
		return &projects[0], nil
	}
	return s.Create(ctx, defaultProjectTitle, "")
}
