// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nixtm/nix-timemach/internal/log"
	"github.com/nixtm/nix-timemach/internal/nixerr"
)

// Well-known locations on a NixOS host.
const (
	DefaultRoot = "/nix/var/nix/profiles"
	SystemName  = "system"
)

// linkRegex is the inverse of Link. It is unanchored so it also matches
// absolute targets.
var linkRegex = regexp.MustCompile(`system-(\d+)-link`)

// Link returns the conventional path of generation id beneath root.
func Link(root, id string) string {
	return filepath.Join(root, fmt.Sprintf("%s-%s-link", SystemName, id))
}

// Profiles returns the ordered profile paths for generation id. There is
// exactly one today.
func Profiles(root, id string) []string {
	return []string{Link(root, id)}
}

// System returns the path of the mutable system profile beneath root.
func System(root string) string {
	return filepath.Join(root, SystemName)
}

// IDFromLink extracts the generation id embedded in a system-<id>-link path.
func IDFromLink(path string) (string, error) {
	matches := linkRegex.FindStringSubmatch(path)
	if matches == nil {
		return "", nixerr.NewParseError("profile target does not match system-<id>-link", path, nil)
	}
	return matches[1], nil
}

// Current follows the profile indirection and returns the id of the
// generation it points at.
func Current(r Resolver, profilePath string) (string, error) {
	target, err := r.Readlink(profilePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", profilePath, err)
	}
	target = strings.TrimSpace(target)
	log.Debugf("current profile: path=%s target=%s", profilePath, target)

	return IDFromLink(target)
}
