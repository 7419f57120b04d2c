// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations no single flag validator can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("output") == output.FormatDelta && c.String("classify") == "tool" {
		return fmt.Errorf("--output %s renders dependency sets and cannot be used with --classify tool", output.FormatDelta)
	}
	return nil
}

// OneOfValidator accepts exactly the given strings.
func OneOfValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !slices.Contains(valid, s) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}
