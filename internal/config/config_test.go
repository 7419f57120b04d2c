// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points NTM_CFG_FILE at a testdata file, resets the global Config
// and runs fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv("NTM_CFG_FILE", absPath)

	Config = Type{}
	defer func() { Config = Type{} }()

	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Source)
		assert.Equal(t, "/nix/var/nix/profiles", cfg.Data["profiles"])

		diff, ok := cfg.Data["diff"].(map[string]interface{})
		require.True(t, ok, "diff should be a map")
		assert.Equal(t, "tool", diff["classify"])
	})
}

func TestLoadInvalid(t *testing.T) {
	withConfig(t, "invalid.yaml", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NTM_CFG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.ErrorContains(t, err, "NTM_CFG_FILE")
}

func TestLoadDirectory(t *testing.T) {
	t.Setenv("NTM_CFG_FILE", t.TempDir())
	_, err := Load()
	assert.ErrorContains(t, err, "points to a directory")
}

func TestGetString(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetString("profiles")
		assert.NoError(t, err)
		assert.Equal(t, "/nix/var/nix/profiles", v)

		v, err = GetString("diff.resolve")
		assert.NoError(t, err)
		assert.Equal(t, "store", v)

		v, err = GetString("missing", "fallback")
		assert.NoError(t, err)
		assert.Equal(t, "fallback", v)

		_, err = GetString("missing")
		assert.Error(t, err)

		_, err = GetString("cache.clean")
		assert.ErrorContains(t, err, "not a string")
	})
}

func TestNamespacePrecedence(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, _ := GetString("classify")
		assert.Equal(t, "heuristic", v)

		Config.Namespace = "diff"
		v, _ = GetString("classify")
		assert.Equal(t, "tool", v)

		// Falls back to the global key when the namespace lacks it.
		v, _ = GetString("profiles")
		assert.Equal(t, "/nix/var/nix/profiles", v)
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		v, err := GetBool("strict")
		assert.NoError(t, err)
		assert.True(t, v)

		v, err = GetBool("missing", true)
		assert.NoError(t, err)
		assert.True(t, v)

		_, err = GetBool("profiles")
		assert.Error(t, err)
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetInt("cache.clean")
		assert.NoError(t, err)
		assert.Equal(t, 48, v)

		v, err = GetInt("missing", 7)
		assert.NoError(t, err)
		assert.Equal(t, 7, v)

		_, err = GetInt("output")
		assert.Error(t, err)
	})
}

func TestGetDuration(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		v, err := GetDuration("timeout")
		assert.NoError(t, err)
		assert.Equal(t, 30*time.Second, v)

		v, err = GetDuration("missing", time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, time.Minute, v)
	})

	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetDuration("diff.timeout")
		assert.NoError(t, err)
		assert.Equal(t, 90*time.Second, v)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "slices.yaml", func(t *testing.T) {
		v, err := GetStringSlice("list.defaults")
		assert.NoError(t, err)
		assert.Equal(t, []string{"--output text", "--titles"}, v)

		_, err = GetStringSlice("mixed")
		assert.ErrorContains(t, err, "not a string")

		v, err = GetStringSlice("missing", []string{"x"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"x"}, v)
	})
}
