// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"time"
)

// Generation is one numbered, immutable build of a system profile.
type Generation struct {
	ID          string
	Timestamp   time.Time
	Description *string
	Profiles    []string
	Current     bool
}

// generationJSON is the stable wire shape of a Generation.
type generationJSON struct {
	ID          string   `json:"id"`
	Timestamp   string   `json:"timestamp"`
	Description *string  `json:"description"`
	Profiles    []string `json:"profiles"`
	Current     bool     `json:"current"`
}

// MarshalJSON renders the timestamp as RFC3339 in UTC and a missing
// description as null.
func (g Generation) MarshalJSON() ([]byte, error) {
	profiles := g.Profiles
	if profiles == nil {
		profiles = []string{}
	}
	return json.Marshal(generationJSON{
		ID:          g.ID,
		Timestamp:   g.Timestamp.UTC().Format(time.RFC3339),
		Description: g.Description,
		Profiles:    profiles,
		Current:     g.Current,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (g *Generation) UnmarshalJSON(data []byte) error {
	var raw generationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ts, err := time.Parse(time.RFC3339, raw.Timestamp)
	if err != nil {
		return err
	}

	*g = Generation{
		ID:          raw.ID,
		Timestamp:   ts.UTC(),
		Description: raw.Description,
		Profiles:    raw.Profiles,
		Current:     raw.Current,
	}
	return nil
}

// DescriptionOr returns the description or fallback when there is none.
func (g Generation) DescriptionOr(fallback string) string {
	if g.Description == nil {
		return fallback
	}
	return *g.Description
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
