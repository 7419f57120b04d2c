// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package models holds the Generation and GenerationDiff records and their
// stable JSON encoding.
package models
