// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/cacheutil"
	"github.com/nixtm/nix-timemach/internal/differ"
	"github.com/nixtm/nix-timemach/internal/genspec"
	"github.com/nixtm/nix-timemach/internal/meta"
	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/output"
)

// diffDefaultAttrs are the columns of diff text output.
var diffDefaultAttrs = []string{"change", "item"}

// diffRow is one line of diff text output.
type diffRow struct {
	Change string `json:"change"`
	Item   string `json:"item"`
}

// diffCommandAction is the action handler for "diff".
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	from, to, err := resolveSpecs(ctx, cmd)
	if err != nil {
		return err
	}

	d, err := newDiffer(cmd)
	if err != nil {
		return err
	}

	if cmd.String("output") == output.FormatDelta {
		fromRefs, toRefs, err := d.References(ctx, from, to)
		if err != nil {
			return err
		}
		return differ.RenderDelta(Writer(cmd), fromRefs, toRefs, output.ColorEnabled(cmd))
	}

	return NewActionRunner(
		"diff",
		diffDefaultAttrs,
		func(ctx context.Context, cmd *cli.Command) (Result, error) {
			diff, err := d.Diff(ctx, from, to)
			if err != nil {
				return Result{}, err
			}
			return diffResult(diff)
		},
	).Run(ctx, cmd)
}

// resolveSpecs turns the positional generation specs into ids. The listing
// is only run when a spec needs it.
func resolveSpecs(ctx context.Context, cmd *cli.Command) (string, string, error) {
	args := cmd.Args().Slice()
	if len(args) > 2 {
		return "", "", fmt.Errorf("expected at most two generations, got %d", len(args))
	}

	specs := genspec.Defaults(args)

	var generations []models.Generation
	if genspec.NeedsListing(specs...) {
		var err error
		generations, err = fetchGenerations(ctx, cmd)
		if err != nil {
			return "", "", err
		}
	}

	ids, err := genspec.Resolve(generations, specs...)
	if err != nil {
		return "", "", err
	}
	log.Debugf("specs resolved: specs=%v ids=%v", specs, ids)

	return ids[0], ids[1], nil
}

func newDiffer(cmd *cli.Command) (*differ.Differ, error) {
	return differ.New(NewRunner(cmd),
		differ.WithRoot(cmd.String("profiles")),
		differ.WithResolver(NewResolver(cmd)),
		differ.WithResolve(cmd.String("resolve")),
		differ.WithClassify(cmd.String("classify")),
		differ.WithCache(cacheutil.Enabled()),
	)
}

// diffResult encodes a diff as its document and as +, -, ~ rows.
func diffResult(diff models.GenerationDiff) (Result, error) {
	doc, err := json.Marshal(diff)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode diff: %w", err)
	}

	changes := diff.Changes()
	rows := make([]diffRow, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, diffRow{Change: c.Kind, Item: c.Path})
	}
	rowDoc, err := json.Marshal(rows)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode diff rows: %w", err)
	}

	return Result{Doc: doc, Rows: rowDoc}, nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:  "diff",
		Usage: "show what changed between two generations",
		UsageText: `nix-timemach diff [from] [to] [options]

   from and to are generation ids, current, current~N, or 0, -1, ...
   counted back from the newest generation. from defaults to current~1
   and to defaults to current. Put -- before negative indexes.`,
		Flags: append(listingFlags("diff", meta.Config.Source),
			NewClassifyFlag("diff", meta.Config.Source),
			NewResolveFlag("diff", meta.Config.Source),
		),
		Outputs: []string{output.FormatDelta},
		Action:  diffCommandAction,
		Meta:    meta,
	}).Build()
}
