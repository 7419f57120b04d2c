// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/nixtm/nix-timemach/internal/config"
	"github.com/nixtm/nix-timemach/internal/profile"
	"github.com/nixtm/nix-timemach/internal/runner"
)

// Meta contains runtime metadata shared by commands: CLI arguments, loaded
// configuration, context, and the collaborators that touch the host. Runner
// and Resolver are nil in production, where commands build real ones; tests
// set them to fakes.
type Meta struct {
	Args     []string
	Config   config.Type
	Context  context.Context
	Runner   runner.Runner
	Resolver profile.Resolver
}
