// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package lister lists the generations of a profile by running the
// toolchain's listing command and parsing its loosely structured output.
//
// Two listing shapes are understood:
//
//	nix-env --list-generations -p /nix/var/nix/profiles/system
//	   1   2024-02-09 10:00:00
//	   2   2024-02-09 11:00:00   (current)
//
//	nixos-rebuild list-generations
//	Generation  Build-date           NixOS version   Kernel
//	2 current   2024-02-09 11:00:00  24.05.20240209  6.6.15
//	1           2024-02-09 10:00:00  24.05.20240201  6.6.14
//
// Header, blank and malformed lines are skipped.
package lister
