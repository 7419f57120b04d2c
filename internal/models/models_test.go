// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationMarshalJSON(t *testing.T) {
	t.Parallel()

	g := Generation{
		ID:          "2",
		Timestamp:   time.Date(2024, 2, 9, 11, 0, 0, 0, time.UTC),
		Description: StringPtr("nixos-22.11.20240209.456"),
		Profiles:    []string{"/nix/var/nix/profiles/system-2-link"},
		Current:     true,
	}

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "2",
		"timestamp": "2024-02-09T11:00:00Z",
		"description": "nixos-22.11.20240209.456",
		"profiles": ["/nix/var/nix/profiles/system-2-link"],
		"current": true
	}`, string(b))
}

func TestGenerationMarshalJSONNullDescription(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("X", 3600)
	g := Generation{ID: "1", Timestamp: time.Date(2024, 2, 9, 11, 0, 0, 0, loc)}

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "1",
		"timestamp": "2024-02-09T10:00:00Z",
		"description": null,
		"profiles": [],
		"current": false
	}`, string(b))
}

func TestGenerationUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var g Generation
	err := json.Unmarshal([]byte(`{"id":"7","timestamp":"2024-02-09T10:00:00Z","description":null,"profiles":["p"],"current":false}`), &g)
	require.NoError(t, err)
	assert.Equal(t, "7", g.ID)
	assert.Nil(t, g.Description)
	assert.Equal(t, "-", g.DescriptionOr("-"))
	assert.True(t, g.Timestamp.Equal(time.Date(2024, 2, 9, 10, 0, 0, 0, time.UTC)))

	assert.Error(t, json.Unmarshal([]byte(`{"id":"7","timestamp":"yesterday"}`), &g))
}

func TestGenerationDiffJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(GenerationDiff{Added: []string{"abc-foo-1.0"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"added":["abc-foo-1.0"],"removed":[],"modified":[]}`, string(b))
}

func TestGenerationDiffChanges(t *testing.T) {
	t.Parallel()

	d := GenerationDiff{
		Added:    []string{"a"},
		Removed:  []string{"r1", "r2"},
		Modified: []string{"r1"},
	}

	assert.False(t, d.Empty())
	assert.True(t, GenerationDiff{}.Empty())
	assert.Equal(t, []Change{
		{Kind: "+", Path: "a"},
		{Kind: "-", Path: "r1"},
		{Kind: "-", Path: "r2"},
		{Kind: "~", Path: "r1"},
	}, d.Changes())
}
