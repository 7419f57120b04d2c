// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/attrs"
	"github.com/nixtm/nix-timemach/internal/config"
	"github.com/nixtm/nix-timemach/internal/meta"
	"github.com/nixtm/nix-timemach/internal/profile"
	"github.com/nixtm/nix-timemach/internal/runner"
)

// BuildAttrs assembles the attr list from a command's defaults and --attrs.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			log.Errorf("bad default attr %q: %v", d, err)
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			log.Errorf("ignoring --attrs: %v", err)
		}
	}
	_ = al.SetGlobalTransformSpec()
	return
}

// GetMeta returns the meta.Meta stored on cmd, or the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewRunner returns the command runner for cmd: the one in meta when set,
// otherwise a real one bounded by --timeout or the timeout config setting.
func NewRunner(cmd *cli.Command) runner.Runner {
	if m := GetMeta(cmd); m.Runner != nil {
		return m.Runner
	}

	timeout := cmd.Duration("timeout")
	if !cmd.IsSet("timeout") {
		if d, err := config.GetDuration("timeout"); err == nil {
			timeout = d
		}
	}
	log.Debugf("runner timeout: %v", timeout)

	return runner.NewExec(timeout)
}

// NewResolver returns the path resolver for cmd.
func NewResolver(cmd *cli.Command) profile.Resolver {
	if m := GetMeta(cmd); m.Resolver != nil {
		return m.Resolver
	}
	return profile.OS{}
}

// ShortCircuitTLDR shows the tldr page for subcmd when --tldr is set.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "nix-timemach", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// Writer is where cmd writes its results.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
