package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeRunner replays a canned result and records the invocation.
type fakeRunner struct {
	result CommandResult
	err    error

	gotDir  string
	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (CommandResult, error) {
	f.gotDir = dir
	f.gotName = name
	f.gotArgs = args
	return f.result, f.err
}

func statExists(string) (os.FileInfo, error)  { return nil, nil }
func statMissing(string) (os.FileInfo, error) { return nil, os.ErrNotExist }

func TestToolRender_Success(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 0}}
	tool := NewToolForTests("bash", "./worker/render_worker.sh", "out/final_1080p.mp4", runner, statExists)

	if err := tool.Render(context.Background(), "/jobs/abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.gotDir != "/jobs/abc" {
		t.Errorf("working dir = %q, want %q", runner.gotDir, "/jobs/abc")
	}
	if runner.gotName != "bash" || len(runner.gotArgs) != 1 || runner.gotArgs[0] != "./worker/render_worker.sh" {
		t.Errorf("invoked %q %v, want bash with the worker script", runner.gotName, runner.gotArgs)
	}
}

func TestToolRender_NonZeroExit(t *testing.T) {
	runner := &fakeRunner{
		result: CommandResult{ExitCode: 3, Stderr: "frame drop\nencoder panic"},
		err:    errors.New("exit status 3"),
	}
	tool := NewToolForTests("bash", "worker.sh", "out/final_1080p.mp4", runner, statExists)

	err := tool.Render(context.Background(), "/jobs/abc")
	if err == nil {
		t.Fatal("expected error")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if toolErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", toolErr.ExitCode)
	}
	// The message keeps only the last stderr line.
	if got := toolErr.Error(); got != "render worker failed (exit=3): encoder panic" {
		t.Errorf("message = %q", got)
	}
}

func TestToolRender_CleanExitMissingOutput(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 0}}
	tool := NewToolForTests("bash", "worker.sh", "out/final_1080p.mp4", runner, statMissing)

	err := tool.Render(context.Background(), "/jobs/abc")
	if err == nil {
		t.Fatal("expected error for missing output")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected wrapped os.ErrNotExist")
	}
}

func TestToolOutputPath(t *testing.T) {
	tool := NewToolForTests("bash", "worker.sh", "out/final_1080p.mp4", &fakeRunner{}, statExists)
	want := filepath.Join("/jobs/abc", "out", "final_1080p.mp4")
	if got := tool.OutputPath("/jobs/abc"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestProbeDuration(t *testing.T) {
	tests := []struct {
		name   string
		result CommandResult
		err    error
		want   int
	}{
		{
			name:   "whole seconds",
			result: CommandResult{Stdout: "302.000000\n"},
			want:   302,
		},
		{
			name:   "fractional truncates",
			result: CommandResult{Stdout: "12.94"},
			want:   12,
		},
		{
			name:   "probe exits non-zero",
			result: CommandResult{ExitCode: 1, Stderr: "no such file"},
			err:    errors.New("exit status 1"),
			want:   0,
		},
		{
			name:   "garbage output",
			result: CommandResult{Stdout: "N/A"},
			want:   0,
		},
		{
			name:   "negative duration",
			result: CommandResult{Stdout: "-3.5"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewProbeForTests("ffprobe", &fakeRunner{result: tt.result, err: tt.err})
			if got := probe.Duration(context.Background(), "video.mp4"); got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProbeDuration_FFProbeArgs(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{Stdout: "1.0"}}
	probe := NewProbeForTests("ffprobe", runner)
	probe.Duration(context.Background(), "clip.mp4")

	want := []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "clip.mp4"}
	if len(runner.gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", runner.gotArgs, want)
	}
	for i := range want {
		if runner.gotArgs[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, runner.gotArgs[i], want[i])
		}
	}
}
