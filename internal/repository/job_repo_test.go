package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/config"
	"github.com/monosoec/slidecast/internal/domain"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
	})
	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	return db
}

func newTestJob(projectID string, createdAt time.Time) *domain.Job {
	return &domain.Job{
		ID:                    uuid.New().String(),
		ProjectID:             projectID,
		Title:                 "Q3 results",
		Purpose:               "investor update",
		Tone:                  "formal",
		TargetDurationSeconds: 300,
		Status:                domain.JobStatusQueued,
		ProgressPercent:       0,
		CreatedAt:             createdAt,
		UpdatedAt:             createdAt,
	}
}

func TestJobRepository_CreateAndGet(t *testing.T) {
	repo := NewJobRepository(testDB(t))
	ctx := context.Background()

	job := newTestJob("p1", time.Now().UTC())
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != job.Title || got.Status != domain.JobStatusQueued {
		t.Errorf("got %+v, want title %q status queued", got, job.Title)
	}
	if got.OutputDurationSeconds != nil {
		t.Errorf("output duration = %v, want nil before quality check", *got.OutputDurationSeconds)
	}
}

func TestJobRepository_GetByID_NotFound(t *testing.T) {
	repo := NewJobRepository(testDB(t))

	_, err := repo.GetByID(context.Background(), "no-such-job")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestJobRepository_UpdateStatus(t *testing.T) {
	repo := NewJobRepository(testDB(t))
	ctx := context.Background()

	created := time.Now().UTC().Add(-time.Minute)
	job := newTestJob("p1", created)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updatedAt := time.Now().UTC()
	got, err := repo.UpdateStatus(ctx, job.ID, domain.JobStatusRunningValidation, 1, updatedAt)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Status != domain.JobStatusRunningValidation {
		t.Errorf("status = %q, want running_validation", got.Status)
	}
	if got.ProgressPercent != 1 {
		t.Errorf("progress = %d, want 1", got.ProgressPercent)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("updated_at %v did not move past %v", got.UpdatedAt, created)
	}
}

func TestJobRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := NewJobRepository(testDB(t))

	_, err := repo.UpdateStatus(context.Background(), "no-such-job", domain.JobStatusFailed, 0, time.Now().UTC())
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestJobRepository_UpdateOutputDuration(t *testing.T) {
	repo := NewJobRepository(testDB(t))
	ctx := context.Background()

	job := newTestJob("p1", time.Now().UTC())
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateOutputDuration(ctx, job.ID, 287); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.OutputDurationSeconds == nil || *got.OutputDurationSeconds != 287 {
		t.Errorf("output duration = %v, want 287", got.OutputDurationSeconds)
	}
}

func TestJobRepository_ListOrdering(t *testing.T) {
	repo := NewJobRepository(testDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	old := newTestJob("p1", base)
	mid := newTestJob("p1", base.Add(10*time.Minute))
	newest := newTestJob("p2", base.Add(20*time.Minute))
	for _, j := range []*domain.Job{old, mid, newest} {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d jobs, want 3", len(all))
	}
	if all[0].ID != newest.ID || all[2].ID != old.ID {
		t.Errorf("jobs not ordered newest-first: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	p1, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("list by project failed: %v", err)
	}
	if len(p1) != 2 {
		t.Fatalf("got %d jobs for p1, want 2", len(p1))
	}
	if p1[0].ID != mid.ID {
		t.Errorf("first job = %s, want %s", p1[0].ID, mid.ID)
	}
}
