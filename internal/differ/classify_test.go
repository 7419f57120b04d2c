// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixtm/nix-timemach/internal/nixerr"
)

func TestPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{"abc-foo-1.0", "foo"},
		{"abc-foo", "foo"},
		{"abc-foo-bar-2.1", "foo"},
		{"/nix/store/abc-glibc-2.38", "glibc"},
		{"abc", ""},
		{"", ""},
		{"abc--1.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, PackageName(tt.id))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     []string
		to       []string
		added    []string
		removed  []string
		modified []string
	}{
		{
			name:     "upgrade",
			from:     []string{"abc-foo-1.0", "def-bar-2.0"},
			to:       []string{"ghi-foo-1.1", "def-bar-2.0"},
			added:    []string{"ghi-foo-1.1"},
			removed:  []string{"abc-foo-1.0"},
			modified: []string{"abc-foo-1.0"},
		},
		{
			name:     "identical",
			from:     []string{"abc-foo-1.0", "def-bar-2.0"},
			to:       []string{"def-bar-2.0", "abc-foo-1.0"},
			added:    []string{},
			removed:  []string{},
			modified: []string{},
		},
		{
			name:     "both empty",
			added:    []string{},
			removed:  []string{},
			modified: []string{},
		},
		{
			name:     "pure addition",
			from:     []string{"abc-foo-1.0"},
			to:       []string{"abc-foo-1.0", "xyz-baz-3.0"},
			added:    []string{"xyz-baz-3.0"},
			removed:  []string{},
			modified: []string{},
		},
		{
			name:     "pure removal",
			from:     []string{"abc-foo-1.0", "xyz-baz-3.0"},
			to:       []string{"abc-foo-1.0"},
			added:    []string{},
			removed:  []string{"xyz-baz-3.0"},
			modified: []string{},
		},
		{
			name:     "hyphenless ids share the empty name",
			from:     []string{"abc"},
			to:       []string{"def"},
			added:    []string{"def"},
			removed:  []string{"abc"},
			modified: []string{"abc"},
		},
		{
			name:     "kept element is modified when a sibling shares its name",
			from:     []string{"abc-foo-1.0"},
			to:       []string{"abc-foo-1.0", "ghi-foo-1.1"},
			added:    []string{"ghi-foo-1.1"},
			removed:  []string{},
			modified: []string{"abc-foo-1.0"},
		},
		{
			name:     "duplicates are ignored",
			from:     []string{"abc-foo-1.0", "abc-foo-1.0"},
			to:       []string{"ghi-foo-1.1", "ghi-foo-1.1"},
			added:    []string{"ghi-foo-1.1"},
			removed:  []string{"abc-foo-1.0"},
			modified: []string{"abc-foo-1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.from, tt.to)
			assert.Equal(t, tt.added, got.Added, "added")
			assert.Equal(t, tt.removed, got.Removed, "removed")
			assert.Equal(t, tt.modified, got.Modified, "modified")
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	t.Parallel()

	from := []string{"a-foo-1", "b-bar-1", "c-baz-1", "d", "e-qux-2"}
	to := []string{"a-foo-1", "f-bar-2", "g-new-1", "h", "e-qux-2"}

	diff := Classify(from, to)

	inFrom := map[string]bool{}
	for _, x := range from {
		inFrom[x] = true
	}
	inTo := map[string]bool{}
	for _, y := range to {
		inTo[y] = true
	}

	for _, y := range diff.Added {
		assert.True(t, inTo[y])
		assert.False(t, inFrom[y])
	}
	for _, x := range diff.Removed {
		assert.True(t, inFrom[x])
		assert.False(t, inTo[x])
	}
	for _, x := range diff.Modified {
		assert.True(t, inFrom[x])
	}

	// Every element on either side is accounted for.
	covered := map[string]bool{}
	for _, y := range diff.Added {
		covered[y] = true
	}
	for _, x := range diff.Removed {
		covered[x] = true
	}
	for _, x := range from {
		if inTo[x] {
			covered[x] = true
		}
	}
	for _, x := range append(append([]string{}, from...), to...) {
		assert.True(t, covered[x], x)
	}

	same := Classify(from, from)
	assert.Empty(t, same.Added)
	assert.Empty(t, same.Removed)
	assert.Empty(t, same.Modified)
}

func TestParseToolOutput(t *testing.T) {
	t.Parallel()

	out := `- old thing
+ new thing
~ changed thing

  + indented addition
comparing /nix/store/a and /nix/store/b
`

	diff, err := ParseToolOutput(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"new thing", "indented addition"}, diff.Added)
	assert.Equal(t, []string{"old thing"}, diff.Removed)
	assert.Equal(t, []string{"changed thing"}, diff.Modified)
}

func TestParseToolOutputEmpty(t *testing.T) {
	t.Parallel()

	diff, err := ParseToolOutput("")
	require.NoError(t, err)
	assert.True(t, diff.Empty())
	assert.NotNil(t, diff.Added)
}

func TestParseToolOutputBareMarker(t *testing.T) {
	t.Parallel()

	_, err := ParseToolOutput("+ foo\n~\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nixerr.ErrParseFailure))
}
