package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/repository"
)

// ReviewService gates a job's final status behind a human decision. Review
// legality is checked against the state machine before anything is written.
type ReviewService struct {
	jobs     *repository.JobRepository
	reviews  *repository.ReviewRepository
	recorder *AuditRecorder
}

// NewReviewService creates a new ReviewService.
func NewReviewService(jobs *repository.JobRepository, reviews *repository.ReviewRepository, recorder *AuditRecorder) *ReviewService {
	return &ReviewService{jobs: jobs, reviews: reviews, recorder: recorder}
}

// Submit records an approve/reject decision and moves the job to its
// terminal status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job under review.
//   - decision: "approved" or "rejected" (case-insensitive).
//   - comment: optional reviewer comment.
// Returns:
//   - *domain.Job: updated job record.
//   - error: domain.ErrJobNotFound, domain.ErrInvalidDecision, or
//     domain.ErrIllegalTransition; the job is unchanged on error.
func (s *ReviewService) Submit(ctx context.Context, jobID, decision, comment string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	decision = strings.ToLower(strings.TrimSpace(decision))
	var next domain.JobStatus
	switch decision {
	case domain.DecisionApproved:
		next = domain.JobStatusApproved
	case domain.DecisionRejected:
		next = domain.JobStatusRejected
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDecision, decision)
	}

	if !domain.CanTransition(job.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, job.Status, next)
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		JobID:     jobID,
		Decision:  decision,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	updated, err := s.jobs.UpdateStatus(ctx, jobID, next, domain.ProgressForStatus(next), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	action := AuditReviewApproved
	if next == domain.JobStatusRejected {
		action = AuditReviewRejected
	}
	s.recorder.Record(ctx, jobID, action, fmt.Sprintf("review recorded: %s", decision))

	return updated, nil
}
