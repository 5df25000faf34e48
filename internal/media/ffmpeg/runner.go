package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"langtagger/internal/services"
)

// Prober returns the diagnostic text ffmpeg prints for a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (string, error)
}

// Runner executes the ffmpeg binary. It is safe for concurrent use.
type Runner struct {
	binary string
	slots  *semaphore.Weighted
	runs   atomic.Int64
}

// NewRunner builds a Runner for binary allowing at most maxConcurrent
// simultaneous processes. maxConcurrent below 1 is treated as 1.
func NewRunner(binary string, maxConcurrent int) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Runner{binary: binary, slots: semaphore.NewWeighted(int64(maxConcurrent))}
}

// Binary returns the executable this runner invokes.
func (r *Runner) Binary() string { return r.binary }

// Invocations reports how many ffmpeg processes have been started.
func (r *Runner) Invocations() int64 { return r.runs.Load() }

// Probe waits for a free slot, then runs ffmpeg and returns stderr. ctx only
// bounds the wait for a slot; a started process runs to completion.
func (r *Runner) Probe(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "probe", "empty path", nil)
	}
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.slots.Release(1)

	r.runs.Add(1)
	var stderr bytes.Buffer
	cmd := exec.Command(r.binary, "-i", path, "-hide_banner")
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	output := stderr.String()

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "probe",
				fmt.Sprintf("start %s", r.binary), runErr)
		}
		if !HasInputDescription(output) {
			return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "probe",
				fmt.Sprintf("exit %d: %s", exitErr.ExitCode(), lastLine(output)), runErr)
		}
	}
	if strings.TrimSpace(output) == "" {
		return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "probe", "no diagnostic output", nil)
	}
	return output, nil
}

// HasInputDescription reports whether output contains ffmpeg's description of
// an opened input.
func HasInputDescription(output string) bool {
	return strings.Contains(output, "Input #")
}

func lastLine(output string) string {
	output = strings.TrimSpace(output)
	if idx := strings.LastIndexByte(output, '\n'); idx >= 0 {
		return strings.TrimSpace(output[idx+1:])
	}
	if output == "" {
		return "no output"
	}
	return output
}
