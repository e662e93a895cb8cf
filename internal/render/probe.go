package render

import (
	"context"
	"strconv"
	"strings"
)

// Probe measures the playable duration of a media file via an external
// command (ffprobe by convention). Probe failures are not errors: any exit,
// parse, or invocation problem yields the sentinel 0, "duration unknown".
type Probe struct {
	command string
	runner  CommandRunner
}

// NewProbe constructs a duration probe using the OS runner.
func NewProbe(command string) *Probe {
	return &Probe{command: command, runner: &ExecRunner{}}
}

// NewProbeForTests constructs a probe with an injectable runner.
func NewProbeForTests(command string, runner CommandRunner) *Probe {
	return &Probe{command: command, runner: runner}
}

// Duration returns the media duration in whole seconds, or 0 when unknown.
func (p *Probe) Duration(ctx context.Context, mediaPath string) int {
	result, err := p.runner.Run(ctx, "", p.command,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaPath,
	)
	if err != nil || result.ExitCode != 0 {
		return 0
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(result.Stdout), 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return int(seconds)
}
