// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	files, err := generate(dir, "1.2.3", now)
	require.NoError(t, err)
	assert.Len(t, files, 6)

	page, err := os.ReadFile(filepath.Join(dir, "commands", "nix-timemach-diff.md"))
	require.NoError(t, err)
	text := string(page)
	assert.Contains(t, text, "# nix-timemach diff")
	assert.Contains(t, text, "--resolve")
	assert.Contains(t, text, "--classify")
	assert.Contains(t, text, "Put -- before negative indexes.")
	assert.Contains(t, text, "January 2, 2026")
	assert.Contains(t, text, "1.2.3")

	tldr, err := os.ReadFile(filepath.Join(dir, "tldr", "nix-timemach-list-generations.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "`nix-timemach list-generations`")
}
