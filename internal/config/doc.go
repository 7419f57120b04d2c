// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for nix-timemach's user
// configuration. The configuration is an optional YAML document located in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/nix-timemach.yaml or
//     $HOME/.config/nix-timemach.yaml
//   - macOS: $HOME/Library/Application Support/nix-timemach.yaml
//
// NTM_CFG_FILE overrides the location. Keys may be namespaced by command
// ("list.strict", "diff.classify"); namespaced keys win over global ones.
package config
