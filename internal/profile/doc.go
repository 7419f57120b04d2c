// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package profile knows the naming convention of generation links
// (<root>/system-<id>-link) and how to follow the mutable system profile to
// the current generation. Filesystem access goes through Resolver so the
// callers can be tested without /nix.
package profile
