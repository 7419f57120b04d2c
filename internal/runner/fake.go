// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"strings"
	"sync"

	"github.com/nixtm/nix-timemach/internal/nixerr"
)

// Fake is a canned Runner keyed by the full command line ("name arg1 arg2").
// Unknown command lines fail as if the binary were missing. Fake is safe for
// concurrent use.
type Fake struct {
	Results map[string]Result

	mu    sync.Mutex
	calls []string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{Results: map[string]Result{}}
}

// On registers stdout for a command line with exit status 0.
func (f *Fake) On(line string, stdout string) *Fake {
	f.Results[line] = Result{Stdout: []byte(stdout)}
	return f
}

// Fail registers a non-zero exit with stderr for a command line.
func (f *Fake) Fail(line string, status int, stderr string) *Fake {
	f.Results[line] = Result{Status: status, Stderr: []byte(stderr)}
	return f
}

// Calls returns the command lines run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) (Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.mu.Unlock()

	result, ok := f.Results[line]
	if !ok {
		return Result{Status: -1}, &nixerr.CommandError{
			Command: name,
			Args:    args,
			Status:  -1,
			Err:     errUnknown,
		}
	}

	if result.Status != 0 {
		return result, &nixerr.CommandError{
			Command: name,
			Args:    args,
			Status:  result.Status,
			Stderr:  string(result.Stderr),
		}
	}

	return result, nil
}

type unknownCommand struct{}

func (unknownCommand) Error() string { return "no canned result for command" }

var errUnknown error = unknownCommand{}
