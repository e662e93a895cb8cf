package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace manages per-job working directories under a common root:
// <root>/<jobID>/{input,input/audio,out}. The render tool runs scoped to a
// job's directory and expects its inputs and output there.
type Workspace struct {
	root string
}

// NewWorkspace creates a workspace rooted at root.
func NewWorkspace(root string) *Workspace {
	return &Workspace{root: root}
}

// JobDir returns the working directory for a job.
func (w *Workspace) JobDir(jobID string) string {
	return filepath.Join(w.root, jobID)
}

// InputDir returns the input directory for a job.
func (w *Workspace) InputDir(jobID string) string {
	return filepath.Join(w.root, jobID, "input")
}

// AudioDir returns the extracted-audio directory for a job.
func (w *Workspace) AudioDir(jobID string) string {
	return filepath.Join(w.root, jobID, "input", "audio")
}

// OutputDir returns the output directory for a job.
func (w *Workspace) OutputDir(jobID string) string {
	return filepath.Join(w.root, jobID, "out")
}

// Prepare creates the job's directory tree. Idempotent: preparing an
// existing workspace is not an error.
func (w *Workspace) Prepare(jobID string) (string, error) {
	for _, dir := range []string{w.AudioDir(jobID), w.OutputDir(jobID)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to prepare workspace for job %s: %w", jobID, err)
		}
	}
	return w.JobDir(jobID), nil
}
