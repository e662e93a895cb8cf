package service

import (
	"context"
	"io"

	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/repository"
	"github.com/monosoec/slidecast/internal/storage"
)

// ArtifactService serves artifact listings and downloads.
type ArtifactService struct {
	jobs      *repository.JobRepository
	artifacts *repository.ArtifactRepository
	store     storage.ObjectStorage
}

// NewArtifactService creates a new ArtifactService.
func NewArtifactService(jobs *repository.JobRepository, artifacts *repository.ArtifactRepository, store storage.ObjectStorage) *ArtifactService {
	return &ArtifactService{jobs: jobs, artifacts: artifacts, store: store}
}

// List returns a job's artifacts newest first. The job must exist.
func (s *ArtifactService) List(ctx context.Context, jobID string) ([]domain.Artifact, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.artifacts.ListByJob(ctx, jobID)
}

// Open resolves an artifact scoped to its job and opens its stored object
// for reading. The caller closes the reader.
func (s *ArtifactService) Open(ctx context.Context, jobID, artifactID string) (*domain.Artifact, io.ReadCloser, error) {
	artifact, err := s.artifacts.GetByID(ctx, jobID, artifactID)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Download(ctx, artifact.StorageURI)
	if err != nil {
		return nil, nil, err
	}
	return artifact, reader, nil
}
