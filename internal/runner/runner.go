// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/nixtm/nix-timemach/internal/log"
	"github.com/nixtm/nix-timemach/internal/nixerr"
)

// Result is the captured outcome of one external command.
type Result struct {
	Status int
	Stdout []byte
	Stderr []byte
}

// Runner runs an external command to completion and captures its output. A
// spawn failure or non-zero exit is returned as *nixerr.CommandError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec runs commands through os/exec. A zero Timeout means no deadline.
type Exec struct {
	Timeout time.Duration
}

// NewExec returns an Exec runner with the given per-command timeout.
func NewExec(timeout time.Duration) *Exec {
	return &Exec{Timeout: timeout}
}

// Run implements Runner.
func (r *Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debugf("exec: cmd=%s %s elapsed=%s", name, strings.Join(args, " "), time.Since(start))

	result := Result{
		Status: cmd.ProcessState.ExitCode(),
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		cmdErr := &nixerr.CommandError{
			Command: name,
			Args:    args,
			Status:  result.Status,
			Stderr:  stderr.String(),
		}

		// An ExitError carries nothing beyond status and stderr, which are
		// already captured. Anything else is a spawn or context failure.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			cmdErr.Err = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			cmdErr.Err = ctxErr
		}
		return result, cmdErr
	}

	return result, nil
}

// Lines splits command output into trimmed, non-empty lines.
func Lines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
