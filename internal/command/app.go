// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/config"
	"github.com/nixtm/nix-timemach/internal/meta"
)

// InitApp builds the command tree for args. The subcommand in args[1], when
// there is one, is the config namespace: list-generations reads list.* keys
// and diff reads diff.* keys before the global ones.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	config.Config.Namespace = Namespace(args)

	// A missing config file is normal.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// Namespace returns the config namespace for the subcommand in args.
func Namespace(args []string) string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return ""
	}
	switch args[1] {
	case "list-generations":
		return "list"
	default:
		return args[1]
	}
}

// NewApp returns the root command wired with m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "nix-timemach",
		Usage: "NixOS generation time machine",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "nix-timemach version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		listCommandBuilder(m),
		diffCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
