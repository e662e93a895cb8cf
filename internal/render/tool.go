package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is the failure of one render tool invocation, carrying enough
// command context for the audit trail.
type ToolError struct {
	Message  string
	ExitCode int
	Stderr   string
	Err      error
}

// Error formats the failure for logs and audit entries.
func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s (exit=%d)", e.Message, e.ExitCode)
	}
	return fmt.Sprintf("%s (exit=%d): %s", e.Message, e.ExitCode, lastLine(e.Stderr))
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// Tool invokes the external render worker as an opaque subprocess scoped to
// a job's working directory. Success is exit code zero AND the expected
// output file existing afterwards.
type Tool struct {
	shell      string
	script     string
	outputFile string
	runner     CommandRunner
	stat       func(name string) (os.FileInfo, error)
}

// NewTool constructs the production render tool.
// Parameters:
//   - shell: interpreter used to run the worker script, e.g. "bash".
//   - script: path to the worker script.
//   - outputFile: expected output path relative to the job directory.
// Returns:
//   - *Tool: tool bound to the OS runner.
func NewTool(shell, script, outputFile string) *Tool {
	return &Tool{
		shell:      shell,
		script:     script,
		outputFile: outputFile,
		runner:     &ExecRunner{},
		stat:       os.Stat,
	}
}

// NewToolForTests constructs a tool with injectable dependencies.
func NewToolForTests(shell, script, outputFile string, runner CommandRunner, stat func(string) (os.FileInfo, error)) *Tool {
	return &Tool{
		shell:      shell,
		script:     script,
		outputFile: outputFile,
		runner:     runner,
		stat:       stat,
	}
}

// Render runs the worker script inside jobDir and verifies the expected
// output file exists. Any non-zero exit, or a missing output after a clean
// exit, is a render failure.
func (t *Tool) Render(ctx context.Context, jobDir string) error {
	result, err := t.runner.Run(ctx, jobDir, t.shell, t.script)
	if err != nil {
		return &ToolError{
			Message:  "render worker failed",
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	outputPath := filepath.Join(jobDir, filepath.FromSlash(t.outputFile))
	if _, err := t.stat(outputPath); err != nil {
		return &ToolError{
			Message:  "render worker completed but output video is missing",
			ExitCode: result.ExitCode,
			Err:      err,
		}
	}

	return nil
}

// OutputPath returns the absolute path of the expected output inside jobDir.
func (t *Tool) OutputPath(jobDir string) string {
	return filepath.Join(jobDir, filepath.FromSlash(t.outputFile))
}

// lastLine returns the final non-empty line of command output.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
