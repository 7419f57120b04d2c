// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package models

import "encoding/json"

// GenerationDiff is the classified delta between two generations' direct
// dependency sets. Modified is not exclusive of Removed.
type GenerationDiff struct {
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// MarshalJSON always renders the three buckets as arrays, never null.
func (d GenerationDiff) MarshalJSON() ([]byte, error) {
	type plain GenerationDiff
	out := plain(d)
	if out.Added == nil {
		out.Added = []string{}
	}
	if out.Removed == nil {
		out.Removed = []string{}
	}
	if out.Modified == nil {
		out.Modified = []string{}
	}
	return json.Marshal(out)
}

// Empty reports whether nothing changed.
func (d GenerationDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// Change is one row of a flattened GenerationDiff.
type Change struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Change kinds, matching the markers of the structural diff tool.
const (
	KindAdded    = "+"
	KindRemoved  = "-"
	KindModified = "~"
)

// Changes flattens the diff into rows: added, then removed, then modified,
// each in bucket order.
func (d GenerationDiff) Changes() []Change {
	changes := make([]Change, 0, len(d.Added)+len(d.Removed)+len(d.Modified))
	for _, p := range d.Added {
		changes = append(changes, Change{Kind: KindAdded, Path: p})
	}
	for _, p := range d.Removed {
		changes = append(changes, Change{Kind: KindRemoved, Path: p})
	}
	for _, p := range d.Modified {
		changes = append(changes, Change{Kind: KindModified, Path: p})
	}
	return changes
}
