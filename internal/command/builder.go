// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/meta"
)

// CommandBuilder constructs a cli.Command for the result-producing
// subcommands (list-generations, diff) using a consistent pattern: metadata,
// the tldr flag, the output flags and the validators are wired for every
// command.
type CommandBuilder struct {
	Name      string
	Namespace string // config namespace, defaults to Name
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Outputs   []string
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	ns := cb.Namespace
	if ns == "" {
		ns = cb.Name
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(ns, cb.Meta.Config.Source, cb.Outputs...)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
