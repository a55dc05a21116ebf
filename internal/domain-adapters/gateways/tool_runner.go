package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// ToolRunner executes external binaries with a bounded lifetime. Tools run
// argv-style, never through a shell: the pipelines invoke a fixed set of
// utilities, not operator-supplied scripts.
type ToolRunner struct {
	defaultTimeout time.Duration
}

// NewToolRunner creates a new tool runner
func NewToolRunner() *ToolRunner {
	return &ToolRunner{
		defaultTimeout: 30 * time.Minute, // exporting a full ESD image is slow
	}
}

// RunConfig describes one external tool invocation
type RunConfig struct {
	Tool        string
	Args        []string
	Dir         string
	Timeout     time.Duration
	Description string
}

// RunResult captures the outcome of a tool invocation
type RunResult struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// LookPath reports whether a tool is available on PATH
func (r *ToolRunner) LookPath(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", tool, err)
	}
	return nil
}

// Run executes the tool and waits for completion. A non-zero exit, spawn
// failure, or timeout yields a *entities.ExternalToolError.
func (r *ToolRunner) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: tool and args come from recipe configuration
	cmd := exec.CommandContext(execCtx, config.Tool, config.Args...)
	if config.Dir != "" {
		cmd.Dir = config.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.Description != "" {
		fmt.Fprintf(os.Stderr, "Running: %s\n", config.Description)
	}

	start := time.Now()
	err := cmd.Run()
	result := &RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		toolErr := &entities.ExternalToolError{
			Tool:     config.Tool,
			ExitCode: -1,
			Stderr:   result.Stderr,
			Err:      err,
		}

		// A timed-out tool is killed and reports as an exit error, so the
		// deadline check has to come first.
		var exitErr *exec.ExitError
		if execCtx.Err() == context.DeadlineExceeded {
			toolErr.Err = fmt.Errorf("timed out after %v", timeout)
		} else if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}

		return result, toolErr
	}

	return result, nil
}
