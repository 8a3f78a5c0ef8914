// Package exec provides abstractions for command execution.
// This package enables testable code by allowing the update script to be mocked.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// Result holds what a finished command wrote and how it exited
type Result struct {
	Stdout   []byte
	Stderr   []byte
	Combined []byte
	// ExitCode is -1 when the command could not be started
	ExitCode int
}

// Runner runs a command to completion.
// A non-zero exit status is reported as a non-nil error with Result filled in.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// CommandRunner executes actual commands using os/exec.
// This is the production implementation.
type CommandRunner struct {
	// Dir is the working directory; empty means the current directory
	Dir string
}

// Run executes the command and captures stdout, stderr and both interleaved
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	combined := &lockedBuffer{}
	cmd.Stdout = io.MultiWriter(&stdout, combined)
	cmd.Stderr = io.MultiWriter(&stderr, combined)

	err := cmd.Run()

	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Combined: combined.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}

	return result, err
}

// DefaultRunner returns the standard production runner.
// This is used as the default when no runner is injected.
func DefaultRunner() Runner {
	return &CommandRunner{}
}

// lockedBuffer lets the stdout and stderr copiers share one buffer
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}
