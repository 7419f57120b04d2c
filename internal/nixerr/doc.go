// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package nixerr holds the error taxonomy shared by the lister and differ:
// command failures, parse failures and unknown generations.
package nixerr
