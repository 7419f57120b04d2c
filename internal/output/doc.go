// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output emits command results as json, yaml, text tables or raw
// documents, and shapes listings with attrs, filters and sorting.
package output
