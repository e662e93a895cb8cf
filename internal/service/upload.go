package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/repository"
	"github.com/monosoec/slidecast/internal/storage"
)

// Input file names inside a job's workspace.
const (
	slidesFileName   = "slides.pdf"
	audioZipFileName = "audio.zip"
)

// UploadService places raw inputs into a job's workspace ahead of a render:
// the slide deck as-is, and the narration audio extracted from its zip
// archive. Both inputs are also mirrored into the artifact store and
// registered as artifacts.
type UploadService struct {
	jobs      *repository.JobRepository
	artifacts *repository.ArtifactRepository
	recorder  *AuditRecorder
	store     storage.ObjectStorage
	workspace *Workspace
}

// NewUploadService creates a new UploadService.
func NewUploadService(
	jobs *repository.JobRepository,
	artifacts *repository.ArtifactRepository,
	recorder *AuditRecorder,
	store storage.ObjectStorage,
	workspace *Workspace,
) *UploadService {
	return &UploadService{
		jobs:      jobs,
		artifacts: artifacts,
		recorder:  recorder,
		store:     store,
		workspace: workspace,
	}
}

// SaveInputs writes the uploaded slide PDF and audio zip into the job's
// workspace, extracts the audio files, mirrors both uploads into the
// artifact store, and registers them as artifacts.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: target job; must exist.
//   - slides: slide PDF content.
//   - audioZip: zip archive of narration audio files.
// Returns:
//   - error: domain.ErrJobNotFound or the first I/O failure.
func (s *UploadService) SaveInputs(ctx context.Context, jobID string, slides, audioZip io.Reader) error {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}

	if _, err := s.workspace.Prepare(jobID); err != nil {
		return err
	}

	inputDir := s.workspace.InputDir(jobID)
	slidesPath := filepath.Join(inputDir, slidesFileName)
	audioZipPath := filepath.Join(inputDir, audioZipFileName)

	if err := writeFile(slidesPath, slides); err != nil {
		return fmt.Errorf("failed to save slides: %w", err)
	}
	if err := writeFile(audioZipPath, audioZip); err != nil {
		return fmt.Errorf("failed to save audio archive: %w", err)
	}

	if err := extractAudioZip(audioZipPath, s.workspace.AudioDir(jobID)); err != nil {
		return fmt.Errorf("failed to extract audio archive: %w", err)
	}

	if err := s.registerInput(ctx, jobID, domain.ArtifactTypeSlidesPDF, slidesFileName, slidesPath, "application/pdf"); err != nil {
		return err
	}
	if err := s.registerInput(ctx, jobID, domain.ArtifactTypeAudioZip, audioZipFileName, audioZipPath, "application/zip"); err != nil {
		return err
	}

	s.recorder.Record(ctx, jobID, AuditInputsUpload, "input files uploaded")
	return nil
}

// registerInput mirrors a saved input file into the artifact store and
// creates its artifact record.
func (s *UploadService) registerInput(ctx context.Context, jobID, artifactType, name, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to reopen %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}

	key := path.Join(jobID, name)
	if err := s.store.Upload(ctx, key, f, info.Size(), contentType); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	artifact := &domain.Artifact{
		ID:           uuid.New().String(),
		JobID:        jobID,
		ArtifactType: artifactType,
		StorageURI:   key,
		Metadata:     domain.MetadataMap{"filename": name},
		CreatedAt:    time.Now().UTC(),
	}
	return s.artifacts.Create(ctx, artifact)
}

// writeFile streams reader content to path.
func writeFile(path string, reader io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// extractAudioZip flattens every file in the archive into destDir,
// discarding directory structure. Directory entries are skipped.
func extractAudioZip(zipPath, destDir string) error {
	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer archive.Close()

	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}

		name := filepath.Base(member.Name)
		if name == "." || name == string(filepath.Separator) {
			continue
		}

		src, err := member.Open()
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(destDir, name), src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}

	return nil
}
