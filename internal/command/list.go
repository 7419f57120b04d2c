// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/lister"
	"github.com/nixtm/nix-timemach/internal/meta"
	"github.com/nixtm/nix-timemach/internal/models"
)

// listDefaultAttrs are the columns of list-generations text output.
var listDefaultAttrs = []string{"id", "timestamp", "description", "profiles", "current"}

// listCommandAction is the action handler for "list-generations".
func listCommandAction(ctx context.Context, cmd *cli.Command) error {
	return NewActionRunner(
		"list-generations",
		listDefaultAttrs,
		func(ctx context.Context, cmd *cli.Command) (Result, error) {
			generations, err := fetchGenerations(ctx, cmd)
			if err != nil {
				return Result{}, err
			}

			doc, err := json.Marshal(generations)
			if err != nil {
				return Result{}, fmt.Errorf("failed to encode generations: %w", err)
			}
			return Result{Doc: doc, Rows: doc}, nil
		},
	).Run(ctx, cmd)
}

// fetchGenerations lists the generations of the profile selected by cmd's
// flags.
func fetchGenerations(ctx context.Context, cmd *cli.Command) ([]models.Generation, error) {
	l, err := lister.New(NewRunner(cmd),
		lister.WithRoot(cmd.String("profiles")),
		lister.WithProfile(cmd.String("profile")),
		lister.WithSource(cmd.String("source")),
		lister.WithFormat(cmd.String("format")),
		lister.WithStrict(cmd.Bool("strict")),
		lister.WithResolver(NewResolver(cmd)),
	)
	if err != nil {
		return nil, err
	}

	generations, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("generations: %d", len(generations))

	return generations, nil
}

// listingFlags are the flags that select and parse a generation listing.
// diff carries them too, to resolve specs like current~1.
func listingFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		NewFormatFlag(ns, cfgFile),
		NewProfileFlag(ns, cfgFile),
		NewProfilesFlag(ns, cfgFile),
		NewSourceFlag(ns, cfgFile),
		NewStrictFlag(ns, cfgFile),
		NewTimeoutFlag(),
	}
}

// listCommandBuilder constructs the cli.Command for "list-generations".
func listCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "list-generations",
		Namespace: "list",
		Usage:     "list system profile generations",
		UsageText: "nix-timemach list-generations [options]",
		Flags:     listingFlags("list", meta.Config.Source),
		Action:    listCommandAction,
		Meta:      meta,
	}).Build()
}
