// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package genspec turns user generation specs into generation ids. Given the
// generations of a profile, it resolves "current", "current~N" and relative
// indexes; plain ids pass through untouched.
package genspec
