// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runner is the one place nix-timemach spawns processes. Both the
// lister and the differ depend only on the Runner interface; tests use Fake.
package runner
