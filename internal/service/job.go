package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/repository"
)

// auditTimeLayout formats audit timestamps for the caller-visible log lines.
const auditTimeLayout = "2006-01-02 15:04"

// CreateJobInput carries the caller-supplied fields for a new job.
type CreateJobInput struct {
	Title                 string
	Purpose               string
	Tone                  string
	TargetDurationSeconds int
}

// JobDetail aggregates a job record with everything recorded against it,
// all newest-first.
type JobDetail struct {
	domain.Job
	Artifacts []domain.Artifact     `json:"artifacts"`
	Logs      []string              `json:"logs"`
	Reviews   []domain.Review       `json:"reviews"`
	Billing   []domain.BillingUsage `json:"billing"`
}

// JobService handles job creation and aggregation reads.
type JobService struct {
	projects  *ProjectService
	jobs      *repository.JobRepository
	artifacts *repository.ArtifactRepository
	reviews   *repository.ReviewRepository
	audits    *repository.AuditLogRepository
	billing   *repository.BillingUsageRepository
	recorder  *AuditRecorder
}

// NewJobService creates a new JobService.
// Parameters:
//   - projects: project service for ownership checks and the default project.
//   - jobs, artifacts, reviews, audits, billing: entity repositories.
//   - recorder: audit recorder.
// Returns:
//   - *JobService: initialized service.
func NewJobService(
	projects *ProjectService,
	jobs *repository.JobRepository,
	artifacts *repository.ArtifactRepository,
	reviews *repository.ReviewRepository,
	audits *repository.AuditLogRepository,
	billing *repository.BillingUsageRepository,
	recorder *AuditRecorder,
) *JobService {
	return &JobService{
		projects:  projects,
		jobs:      jobs,
		artifacts: artifacts,
		reviews:   reviews,
		audits:    audits,
		billing:   billing,
		recorder:  recorder,
	}
}

// Create inserts a new job under the given project. An empty projectID puts
// the job under the default project. New jobs always start queued with the
// progress value defined for queued.
func (s *JobService) Create(ctx context.Context, projectID string, in CreateJobInput) (*JobDetail, error) {
	var project *domain.Project
	var err error
	if projectID == "" {
		project, err = s.projects.DefaultProject(ctx)
	} else {
		project, err = s.projects.Get(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:                    uuid.New().String(),
		ProjectID:             project.ID,
		Title:                 in.Title,
		Purpose:               in.Purpose,
		Tone:                  in.Tone,
		TargetDurationSeconds: in.TargetDurationSeconds,
		Status:                domain.JobStatusQueued,
		ProgressPercent:       domain.ProgressForStatus(domain.JobStatusQueued),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, job.ID, AuditJobCreate, "job created")

	return s.Detail(ctx, job.ID)
}

// Get retrieves a bare job record by ID.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// Detail retrieves a job with its artifacts, formatted audit log, reviews,
// and billing usage.
func (s *JobService) Detail(ctx context.Context, id string) (*JobDetail, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detailFor(ctx, job)
}

// ListByProject returns a project's jobs with details, newest first. The
// project must exist.
func (s *JobService) ListByProject(ctx context.Context, projectID string) ([]JobDetail, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.detailsFor(ctx, jobs)
}

// ListAll returns every job with details, newest first.
func (s *JobService) ListAll(ctx context.Context) ([]JobDetail, error) {
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailsFor(ctx, jobs)
}

func (s *JobService) detailsFor(ctx context.Context, jobs []domain.Job) ([]JobDetail, error) {
	details := make([]JobDetail, 0, len(jobs))
	for i := range jobs {
		detail, err := s.detailFor(ctx, &jobs[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *JobService) detailFor(ctx context.Context, job *domain.Job) (*JobDetail, error) {
	artifacts, err := s.artifacts.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.audits.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	billing, err := s.billing.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	logs := make([]string, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, fmt.Sprintf("%s %s", entry.CreatedAt.Format(auditTimeLayout), entry.Detail))
	}

	return &JobDetail{
		Job:       *job,
		Artifacts: artifacts,
		Logs:      logs,
		Reviews:   reviews,
		Billing:   billing,
	}, nil
}
