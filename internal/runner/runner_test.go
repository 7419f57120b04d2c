// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixtm/nix-timemach/internal/nixerr"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecSuccess(t *testing.T) {
	requireSh(t)
	t.Parallel()

	res, err := NewExec(0).Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
}

func TestExecNonZero(t *testing.T) {
	requireSh(t)
	t.Parallel()

	_, err := NewExec(0).Run(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nixerr.ErrCommandFailed))

	var ce *nixerr.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.Status)
	assert.Equal(t, "broken\n", ce.Stderr)
	assert.Nil(t, ce.Err)
}

func TestExecMissingBinary(t *testing.T) {
	t.Parallel()

	_, err := NewExec(0).Run(context.Background(), "definitely-not-a-real-binary-ntm")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nixerr.ErrCommandFailed))
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecTimeout(t *testing.T) {
	requireSh(t)
	t.Parallel()

	_, err := NewExec(50*time.Millisecond).Run(context.Background(), "sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFake(t *testing.T) {
	t.Parallel()

	f := NewFake().
		On("nix-env --list-generations", "1 2024-02-09 10:00:00\n").
		Fail("readlink /nix/var/nix/profiles/system", 1, "no such file")

	res, err := f.Run(context.Background(), "nix-env", "--list-generations")
	require.NoError(t, err)
	assert.Equal(t, "1 2024-02-09 10:00:00\n", string(res.Stdout))

	_, err = f.Run(context.Background(), "readlink", "/nix/var/nix/profiles/system")
	var ce *nixerr.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "no such file", ce.Stderr)

	_, err = f.Run(context.Background(), "nix-diff", "a", "b")
	assert.True(t, errors.Is(err, nixerr.ErrCommandFailed))

	assert.Equal(t, []string{
		"nix-env --list-generations",
		"readlink /nix/var/nix/profiles/system",
		"nix-diff a b",
	}, f.Calls())
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Lines(nil))
	assert.Equal(t, []string{"/nix/store/a", "/nix/store/b"}, Lines([]byte("  /nix/store/a\n\n/nix/store/b  \n")))
}
