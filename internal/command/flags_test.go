// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const flagsConfig = `classify: tool
strict: true
output: yaml
diff:
  resolve: store
list:
  resolve: link
`

type flagValues struct {
	classify string
	resolve  string
	output   string
	strict   bool
}

func runWithConfig(t *testing.T, path string, args ...string) flagValues {
	t.Helper()

	var got flagValues
	cmd := &cli.Command{
		Name: "diff",
		Flags: append([]cli.Flag{
			NewClassifyFlag("diff", path),
			NewResolveFlag("diff", path),
			NewStrictFlag("diff", path),
		}, NewGlobalFlags("diff", path)...),
		Action: func(_ context.Context, c *cli.Command) error {
			got = flagValues{
				classify: c.String("classify"),
				resolve:  c.String("resolve"),
				output:   c.String("output"),
				strict:   c.Bool("strict"),
			}
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"diff"}, args...)))
	return got
}

func TestFlagsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nix-timemach.yaml")
	require.NoError(t, os.WriteFile(path, []byte(flagsConfig), 0o600))

	got := runWithConfig(t, path)
	assert.Equal(t, "tool", got.classify, "global key")
	assert.Equal(t, "store", got.resolve, "namespaced key")
	assert.Equal(t, "yaml", got.output)
	assert.True(t, got.strict)

	got = runWithConfig(t, path, "--resolve", "link", "--output", "json")
	assert.Equal(t, "link", got.resolve, "flag beats config")
	assert.Equal(t, "json", got.output)

	t.Setenv("NTM_CLASSIFY", "heuristic")
	got = runWithConfig(t, path)
	assert.Equal(t, "heuristic", got.classify, "env beats config")
}

func TestFlagsWithoutConfig(t *testing.T) {
	got := runWithConfig(t, "")
	assert.Equal(t, "heuristic", got.classify)
	assert.Equal(t, "link", got.resolve)
	assert.Equal(t, "json", got.output)
	assert.False(t, got.strict)
}

func TestOneOfValidator(t *testing.T) {
	v := OneOfValidator("a", "b")
	assert.NoError(t, v("a"))
	assert.Error(t, v("c"))
	assert.Error(t, v(1))
	assert.NoError(t, FlagValidators("b", v))
}
