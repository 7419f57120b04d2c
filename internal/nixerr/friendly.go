// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nixerr

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Friendly rewrites err into a one-line message for the terminal while
// keeping the original diagnostic text. Unknown errors pass through.
func Friendly(err error) error {
	if err == nil {
		return nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if errors.Is(cmdErr.Err, exec.ErrNotFound) {
			return fmt.Errorf("%s not found in PATH; is this a NixOS host? (%w)", cmdErr.Command, err)
		}
		if stderr := firstLine(cmdErr.Stderr); stderr != "" {
			return fmt.Errorf("%s exited with status %d: %s (%w)", cmdErr.Command, cmdErr.Status, stderr, err)
		}
		return err
	}

	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return fmt.Errorf("generation %q does not exist (%w)", nfErr.ID, err)
	}

	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
