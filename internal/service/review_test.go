package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/monosoec/slidecast/internal/domain"
)

func jobAwaitingApproval(t *testing.T, env *testEnv) *domain.Job {
	t.Helper()
	job := env.createJob(t)
	got, err := env.jobs.UpdateStatus(
		context.Background(),
		job.ID,
		domain.JobStatusAwaitingApproval,
		domain.ProgressForStatus(domain.JobStatusAwaitingApproval),
		time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return got
}

func TestReviewSubmit_Approve(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := jobAwaitingApproval(t, env)
	ctx := context.Background()

	got, err := svc.Submit(ctx, job.ID, "approved", "looks good")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != domain.JobStatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if want := domain.ProgressForStatus(domain.JobStatusApproved); got.ProgressPercent != want {
		t.Errorf("progress = %d, want %d", got.ProgressPercent, want)
	}

	reviews, err := env.reviews.ListByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Decision != "approved" || reviews[0].Comment != "looks good" {
		t.Errorf("reviews = %+v, want one approved record", reviews)
	}
	if actions := auditActions(t, env, job.ID); actions[AuditReviewApproved] != 1 {
		t.Errorf("review.approved entries = %d, want 1", actions[AuditReviewApproved])
	}
}

func TestReviewSubmit_Reject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := jobAwaitingApproval(t, env)

	got, err := svc.Submit(context.Background(), job.ID, "rejected", "pacing is off")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != domain.JobStatusRejected {
		t.Errorf("status = %q, want rejected", got.Status)
	}
	if got.ProgressPercent != 0 {
		t.Errorf("progress = %d, want 0 for rejected", got.ProgressPercent)
	}
	if actions := auditActions(t, env, job.ID); actions[AuditReviewRejected] != 1 {
		t.Errorf("review.rejected entries = %d, want 1", actions[AuditReviewRejected])
	}
}

func TestReviewSubmit_DecisionNormalized(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := jobAwaitingApproval(t, env)

	got, err := svc.Submit(context.Background(), job.ID, "  Approved ", "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != domain.JobStatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
}

func TestReviewSubmit_InvalidDecision(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := jobAwaitingApproval(t, env)
	ctx := context.Background()

	_, err := svc.Submit(ctx, job.ID, "maybe", "")
	if !errors.Is(err, domain.ErrInvalidDecision) {
		t.Fatalf("err = %v, want ErrInvalidDecision", err)
	}

	got, _ := env.jobs.GetByID(ctx, job.ID)
	if got.Status != domain.JobStatusAwaitingApproval {
		t.Errorf("status = %q, job changed on invalid decision", got.Status)
	}
	if reviews, _ := env.reviews.ListByJob(ctx, job.ID); len(reviews) != 0 {
		t.Errorf("reviews = %d, want 0 on invalid decision", len(reviews))
	}
}

func TestReviewSubmit_NotAwaitingApproval(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := env.createJob(t)
	ctx := context.Background()

	// Still queued: the review gate is closed.
	_, err := svc.Submit(ctx, job.ID, "approved", "")
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}

	got, _ := env.jobs.GetByID(ctx, job.ID)
	if got.Status != domain.JobStatusQueued {
		t.Errorf("status = %q, job changed on illegal review", got.Status)
	}
}

func TestReviewSubmit_AlreadyDecided(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)
	job := jobAwaitingApproval(t, env)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, job.ID, "approved", ""); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	// Terminal statuses accept no further decisions.
	_, err := svc.Submit(ctx, job.ID, "rejected", "changed my mind")
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	got, _ := env.jobs.GetByID(ctx, job.ID)
	if got.Status != domain.JobStatusApproved {
		t.Errorf("status = %q, want approved to stick", got.Status)
	}
}

func TestReviewSubmit_JobNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.jobs, env.reviews, env.recorder)

	_, err := svc.Submit(context.Background(), "no-such-job", "approved", "")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}
