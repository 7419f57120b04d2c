// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/output"
)

// Result is what a command produces: its JSON document and the same result
// as a JSON array of flat rows for tabular output.
type Result struct {
	Doc  []byte
	Rows []byte
}

// ActionRunner encapsulates the common action pattern of the result
// commands: meta, tldr short circuit, attrs, fetch and emit. Only the fetch
// step differs between commands.
type ActionRunner struct {
	CommandName  string
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) (Result, error)
}

// Run executes the action with the provided context and command.
func (ar *ActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	if ShortCircuitTLDR(ctx, cmd, ar.CommandName) {
		return nil
	}

	attrs := BuildAttrs(cmd, ar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs.String())

	result, err := ar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	return output.Emit(Writer(cmd), cmd, result.Doc, result.Rows, attrs, nil)
}

// NewActionRunner creates an ActionRunner.
func NewActionRunner(
	commandName string,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) (Result, error),
) *ActionRunner {
	return &ActionRunner{
		CommandName:  commandName,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
