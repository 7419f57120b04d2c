// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing with --filter expressions.
//
// A filter is key, operator and target. Any operator may be negated with a
// leading !. A bare key keeps rows where the key is true.
//
//   - = : equals (numeric for numbers)
//   - ~ : equals, ignoring case
//   - ^ : has prefix
//   - < : less than (numeric for numbers)
//   - > : greater than (numeric for numbers)
//   - @ : contains substring, or array/object membership
//   - / : matches regular expression
//
// Examples:
//
//   - "current" : the current generation only
//   - "id>40" : generations after 40
//   - "description^nixos-24" : descriptions starting with "nixos-24"
//   - "profiles@/nix/var/nix/profiles/system-42-link" : profile membership
//   - "timestamp>2024-06" : RFC3339 timestamps compare as strings
//
// Keys match the OutputKey of an attr (see package attrs) or, failing that,
// a gjson path in the row. Filters are comma separated unless
// NTM_FILTER_DELIM names another delimiter.
package filters
