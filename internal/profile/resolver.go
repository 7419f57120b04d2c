// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"os"
)

// Resolver abstracts the filesystem indirections the lister and differ read.
type Resolver interface {
	// Readlink returns the immediate target of a symbolic link.
	Readlink(path string) (string, error)
	// Exists reports whether path exists, without following a final link.
	Exists(path string) bool
}

// OS is the Resolver backed by the real filesystem.
type OS struct{}

func (OS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Static is a canned Resolver. Links maps a link path to its target; every
// key of Links also exists.
type Static struct {
	Links map[string]string
	Files map[string]bool
}

func (s Static) Readlink(path string) (string, error) {
	if target, ok := s.Links[path]; ok {
		return target, nil
	}
	return "", &os.PathError{Op: "readlink", Path: path, Err: os.ErrNotExist}
}

func (s Static) Exists(path string) bool {
	if _, ok := s.Links[path]; ok {
		return true
	}
	return s.Files[path]
}
