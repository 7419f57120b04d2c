// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixtm/nix-timemach/internal/nixerr"
)

func TestLink(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/nix/var/nix/profiles/system-7-link", Link(DefaultRoot, "7"))
	assert.Equal(t, []string{"/root/system-7-link"}, Profiles("/root", "7"))
	assert.Equal(t, "/nix/var/nix/profiles/system", System(DefaultRoot))
}

func TestIDFromLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "system-2-link", want: "2"},
		{in: "/nix/var/nix/profiles/system-142-link", want: "142"},
		{in: "/nix/store/abc-nixos-system", wantErr: true},
		{in: "system--link", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := IDFromLink(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, nixerr.ErrParseFailure))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	r := Static{Links: map[string]string{
		"/p/system": "system-2-link\n",
		"/q/system": "/nix/store/xyz-nixos-system",
	}}

	id, err := Current(r, "/p/system")
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	_, err = Current(r, "/q/system")
	assert.True(t, errors.Is(err, nixerr.ErrParseFailure))

	_, err = Current(r, "/missing/system")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOSResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "system-3-link")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	link := filepath.Join(dir, "system")
	if err := os.Symlink("system-3-link", link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	id, err := Current(OS{}, link)
	require.NoError(t, err)
	assert.Equal(t, "3", id)

	assert.True(t, OS{}.Exists(link))
	assert.False(t, OS{}.Exists(filepath.Join(dir, "system-4-link")))
}
