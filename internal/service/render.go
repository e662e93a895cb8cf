package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/repository"
	"github.com/monosoec/slidecast/internal/storage"
)

// renderArtifactName is the fixed name the finished video is stored under,
// keyed by job identity in the artifact store.
const renderArtifactName = "final_1080p.mp4"

// RenderTool runs the external render worker scoped to a job directory.
type RenderTool interface {
	Render(ctx context.Context, jobDir string) error
	OutputPath(jobDir string) string
}

// DurationProbe measures a media file's playable duration in seconds,
// returning 0 when the duration cannot be determined.
type DurationProbe interface {
	Duration(ctx context.Context, mediaPath string) int
}

// RenderOrchestrator drives one job through the render pipeline end-to-end:
// stage transitions, the external tool, artifact registration, billing, and
// the terminal needs-review or failed status. Renders for different jobs run
// fully in parallel; a per-job in-flight lock prevents two renders of the
// same job from racing.
type RenderOrchestrator struct {
	jobs      *repository.JobRepository
	artifacts *repository.ArtifactRepository
	billing   *repository.BillingUsageRepository
	recorder  *AuditRecorder
	store     storage.ObjectStorage
	tool      RenderTool
	probe     DurationProbe
	workspace *Workspace
	logger    *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	slots    chan struct{}
}

// NewRenderOrchestrator creates a new RenderOrchestrator.
// Parameters:
//   - jobs, artifacts, billing: entity repositories.
//   - recorder: audit recorder.
//   - store: durable artifact store.
//   - tool: external render tool boundary.
//   - probe: duration probe boundary.
//   - workspace: per-job working directory manager.
//   - log: base logger.
//   - workers: maximum number of concurrent renders.
// Returns:
//   - *RenderOrchestrator: initialized orchestrator.
func NewRenderOrchestrator(
	jobs *repository.JobRepository,
	artifacts *repository.ArtifactRepository,
	billing *repository.BillingUsageRepository,
	recorder *AuditRecorder,
	store storage.ObjectStorage,
	tool RenderTool,
	probe DurationProbe,
	workspace *Workspace,
	log *logger.Logger,
	workers int,
) *RenderOrchestrator {
	if workers < 1 {
		workers = 1
	}
	return &RenderOrchestrator{
		jobs:      jobs,
		artifacts: artifacts,
		billing:   billing,
		recorder:  recorder,
		store:     store,
		tool:      tool,
		probe:     probe,
		workspace: workspace,
		logger:    log,
		inflight:  make(map[string]struct{}),
		slots:     make(chan struct{}, workers),
	}
}

// Trigger starts a render for the job in a background worker and returns
// immediately. A second trigger while a render is in flight for the same job
// returns domain.ErrRenderInFlight.
func (s *RenderOrchestrator) Trigger(ctx context.Context, jobID string) error {
	if !s.acquire(jobID) {
		return fmt.Errorf("%w: %s", domain.ErrRenderInFlight, jobID)
	}

	s.recorder.Record(ctx, jobID, AuditRenderRequest, "render requested")

	go func() {
		defer s.release(jobID)

		s.slots <- struct{}{}
		defer func() { <-s.slots }()

		workerCtx := logger.SetJobID(context.Background(), jobID)
		if err := s.RunRender(workerCtx, jobID); err != nil {
			if errors.Is(err, domain.ErrJobNotFound) {
				// Caller lost a race or supplied a stale id. Named no-op.
				logger.CtxDebug(workerCtx, "render skipped, job no longer exists")
				return
			}
			logger.CtxError(workerCtx, "render run ended with failure: %v", err)
		}
	}()

	return nil
}

// InFlight reports whether a render is currently running for the job.
func (s *RenderOrchestrator) InFlight(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[jobID]
	return ok
}

func (s *RenderOrchestrator) acquire(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inflight[jobID]; ok {
		return false
	}
	s.inflight[jobID] = struct{}{}
	return true
}

func (s *RenderOrchestrator) release(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, jobID)
}

// RunRender drives the job through the pipeline to awaiting_approval or
// failed. It is synchronous; Trigger wraps it in a worker goroutine.
//
// Returned errors are named outcomes for tests and internal callers; they
// are never surfaced to the HTTP caller that triggered the render.
func (s *RenderOrchestrator) RunRender(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	jobDir, err := s.workspace.Prepare(jobID)
	if err != nil {
		s.fail(ctx, jobID, err)
		return err
	}

	s.recorder.Record(ctx, jobID, AuditRenderStart, "render started")

	current := job.Status
	for _, stage := range domain.RenderPath {
		if !domain.CanTransition(current, stage) {
			// The job moved underneath us (or was triggered from a terminal
			// status). Abort with no further side effects.
			return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, current, stage)
		}

		if _, err := s.jobs.UpdateStatus(ctx, jobID, stage, domain.ProgressForStatus(stage), time.Now().UTC()); err != nil {
			return err
		}
		current = stage

		if stage != domain.JobStatusAwaitingApproval {
			s.recorder.Record(ctx, jobID, AuditRenderStage, fmt.Sprintf("entered stage %s", stage))
		}

		if err := s.runStage(ctx, stage, jobID, jobDir); err != nil {
			s.fail(ctx, jobID, err)
			return err
		}
	}

	s.recorder.Record(ctx, jobID, AuditRenderComplete, "render completed, awaiting approval")
	return nil
}

// runStage executes the work attached to a pipeline stage. Stages without an
// executor are orchestrated milestones: the worker tool performs their heavy
// lifting during the render stage.
func (s *RenderOrchestrator) runStage(ctx context.Context, stage domain.JobStatus, jobID, jobDir string) error {
	switch stage {
	case domain.JobStatusRunningValidation:
		if _, err := os.Stat(s.workspace.InputDir(jobID)); err != nil {
			return fmt.Errorf("job workspace is not usable: %w", err)
		}
		return nil
	case domain.JobStatusRunningRender:
		return s.tool.Render(ctx, jobDir)
	case domain.JobStatusRunningQualityCheck:
		return s.publishOutput(ctx, jobID, jobDir)
	default:
		return nil
	}
}

// publishOutput moves the finished video into the durable artifact store,
// registers the artifact, and records billing usage when the duration probe
// yields a measurement. An unknown duration is not a failure.
func (s *RenderOrchestrator) publishOutput(ctx context.Context, jobID, jobDir string) error {
	outputPath := s.tool.OutputPath(jobDir)
	f, err := os.Open(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open render output: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat render output: %w", err)
	}

	key := path.Join(jobID, renderArtifactName)
	if err := s.store.Upload(ctx, key, f, info.Size(), "video/mp4"); err != nil {
		return fmt.Errorf("failed to store render output: %w", err)
	}

	artifact := &domain.Artifact{
		ID:           uuid.New().String(),
		JobID:        jobID,
		ArtifactType: domain.ArtifactTypeVideoMP4,
		StorageURI:   key,
		Metadata:     domain.MetadataMap{"filename": renderArtifactName},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return fmt.Errorf("failed to register video artifact: %w", err)
	}

	duration := s.probe.Duration(ctx, outputPath)
	if duration == 0 {
		// Duration unknown: render still succeeds, no billing row.
		logger.CtxWarn(ctx, "duration probe returned unknown for %s", outputPath)
		return nil
	}

	if err := s.jobs.UpdateOutputDuration(ctx, jobID, duration); err != nil {
		return fmt.Errorf("failed to persist output duration: %w", err)
	}
	usage := &domain.BillingUsage{
		ID:              uuid.New().String(),
		JobID:           jobID,
		DurationSeconds: duration,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.billing.Create(ctx, usage); err != nil {
		return fmt.Errorf("failed to record billing usage: %w", err)
	}

	return nil
}

// fail moves the job to the terminal failed status and appends the failure
// audit entry. Side effects already committed by earlier stages stay as they
// are; only the final status reflects the failure.
func (s *RenderOrchestrator) fail(ctx context.Context, jobID string, cause error) {
	if _, err := s.jobs.UpdateStatus(ctx, jobID, domain.JobStatusFailed, domain.ProgressForStatus(domain.JobStatusFailed), time.Now().UTC()); err != nil {
		logger.CtxError(ctx, "failed to mark job %s failed: %v", jobID, err)
	}
	s.recorder.Record(ctx, jobID, AuditRenderFailed, fmt.Sprintf("render failed: %v", cause))
}
