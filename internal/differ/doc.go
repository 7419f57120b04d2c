// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes what changed between two generations: items added,
// removed or modified in their direct dependency sets. Resolution (profile
// link or store path) and classification (set heuristic or external diff
// tool) are selected independently.
package differ
