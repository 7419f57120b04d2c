// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nixerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for the three failure classes. Every typed error below Is one of
// them.
var (
	ErrCommandFailed      = errors.New("command failed")
	ErrParseFailure       = errors.New("parse failure")
	ErrGenerationNotFound = errors.New("generation not found")
)

// CommandError reports an external command that could not be spawned or
// exited non-zero. Stderr is kept verbatim.
type CommandError struct {
	Command string
	Args    []string
	Status  int
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	line := strings.TrimSpace(strings.Join(append([]string{e.Command}, e.Args...), " "))
	stderr := strings.TrimSpace(e.Stderr)

	switch {
	case e.Err != nil && stderr != "":
		return fmt.Sprintf("%s: %s: %v: %s", ErrCommandFailed, line, e.Err, stderr)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrCommandFailed, line, e.Err)
	case stderr != "":
		return fmt.Sprintf("%s: %s: exit status %d: %s", ErrCommandFailed, line, e.Status, stderr)
	default:
		return fmt.Sprintf("%s: %s: exit status %d", ErrCommandFailed, line, e.Status)
	}
}

func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }

func (e *CommandError) Unwrap() error { return e.Err }

// ParseError reports output that does not honor the expected textual contract.
type ParseError struct {
	What  string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrParseFailure, e.What)
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a generation identifier with no resolvable path.
type NotFoundError struct {
	ID  string
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrGenerationNotFound, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrGenerationNotFound, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrGenerationNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// NewParseError is shorthand for &ParseError{...}.
func NewParseError(what, input string, err error) error {
	return &ParseError{What: what, Input: input, Err: err}
}

// NewNotFoundError is shorthand for &NotFoundError{...}.
func NewNotFoundError(id string, err error) error {
	return &NotFoundError{ID: id, Err: err}
}
