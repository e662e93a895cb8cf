package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/monosoec/slidecast/internal/domain"
)

func makeAudioZip(t *testing.T, entries map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestSaveInputs(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUploadService(env.jobs, env.artifacts, env.recorder, env.store, env.workspace)
	job := env.createJob(t)
	ctx := context.Background()

	audio := makeAudioZip(t, map[string]string{
		"slide_001.mp3":        "audio one",
		"nested/slide_002.mp3": "audio two",
	})
	if err := svc.SaveInputs(ctx, job.ID, strings.NewReader("%PDF-1.7 fake"), audio); err != nil {
		t.Fatalf("save inputs failed: %v", err)
	}

	// Inputs land in the workspace; the archive is flattened into audio/.
	if _, err := os.Stat(filepath.Join(env.workspace.InputDir(job.ID), slidesFileName)); err != nil {
		t.Errorf("slides missing from workspace: %v", err)
	}
	for _, name := range []string{"slide_001.mp3", "slide_002.mp3"} {
		if _, err := os.Stat(filepath.Join(env.workspace.AudioDir(job.ID), name)); err != nil {
			t.Errorf("%s missing from audio dir: %v", name, err)
		}
	}

	// Both inputs are mirrored to storage and registered as artifacts.
	artifacts, err := env.artifacts.ListByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list artifacts failed: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(artifacts))
	}
	types := map[string]string{}
	for _, a := range artifacts {
		types[a.ArtifactType] = a.StorageURI
		exists, err := env.store.Exists(ctx, a.StorageURI)
		if err != nil || !exists {
			t.Errorf("stored object %q missing: exists=%v err=%v", a.StorageURI, exists, err)
		}
	}
	if types[domain.ArtifactTypeSlidesPDF] != job.ID+"/"+slidesFileName {
		t.Errorf("slides uri = %q", types[domain.ArtifactTypeSlidesPDF])
	}
	if types[domain.ArtifactTypeAudioZip] != job.ID+"/"+audioZipFileName {
		t.Errorf("audio uri = %q", types[domain.ArtifactTypeAudioZip])
	}

	if actions := auditActions(t, env, job.ID); actions[AuditInputsUpload] != 1 {
		t.Errorf("inputs.upload entries = %d, want 1", actions[AuditInputsUpload])
	}
}

func TestSaveInputs_Reupload(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUploadService(env.jobs, env.artifacts, env.recorder, env.store, env.workspace)
	job := env.createJob(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		audio := makeAudioZip(t, map[string]string{"narration.mp3": "take"})
		if err := svc.SaveInputs(ctx, job.ID, strings.NewReader("%PDF"), audio); err != nil {
			t.Fatalf("upload %d failed: %v", i+1, err)
		}
	}

	// Artifacts are append-only; a re-upload adds a second pair.
	artifacts, err := env.artifacts.ListByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list artifacts failed: %v", err)
	}
	if len(artifacts) != 4 {
		t.Errorf("got %d artifacts, want 4 after re-upload", len(artifacts))
	}
}

func TestSaveInputs_JobNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUploadService(env.jobs, env.artifacts, env.recorder, env.store, env.workspace)

	audio := makeAudioZip(t, map[string]string{"a.mp3": "x"})
	err := svc.SaveInputs(context.Background(), "no-such-job", strings.NewReader("%PDF"), audio)
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestSaveInputs_BadArchive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUploadService(env.jobs, env.artifacts, env.recorder, env.store, env.workspace)
	job := env.createJob(t)
	ctx := context.Background()

	err := svc.SaveInputs(ctx, job.ID, strings.NewReader("%PDF"), strings.NewReader("not a zip"))
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}

	// Nothing is registered when extraction fails.
	if artifacts, _ := env.artifacts.ListByJob(ctx, job.ID); len(artifacts) != 0 {
		t.Errorf("artifacts = %d, want 0", len(artifacts))
	}
}
