// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lister

import (
	"context"
	"fmt"
	"strings"

	"github.com/nixtm/nix-timemach/internal/log"
	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/profile"
	"github.com/nixtm/nix-timemach/internal/runner"
)

// Source is a toolchain command that prints one line per generation.
type Source struct {
	Name    string
	Command string
	Args    func(profilePath string) []string
	Format  Format
}

// Sources known to the lister, by name.
var Sources = map[string]Source{
	"nix-env": {
		Name:    "nix-env",
		Command: "nix-env",
		Args: func(profilePath string) []string {
			return []string{"--list-generations", "-p", profilePath}
		},
		Format: FormatClean,
	},
	"nixos-rebuild": {
		Name:    "nixos-rebuild",
		Command: "nixos-rebuild",
		Args: func(string) []string {
			return []string{"list-generations"}
		},
		Format: FormatMarked,
	},
}

// DefaultSource is used when no source is configured.
const DefaultSource = "nix-env"

// Lister lists the generations of one profile.
type Lister struct {
	Runner   runner.Runner
	Resolver profile.Resolver
	Root     string
	Profile  string
	Source   Source
	Strict   bool
}

// Option configures a Lister.
type Option = func(l *Lister) error

// New returns a Lister that runs commands through r. Defaults are the NixOS
// profile root, the system profile, the nix-env source, permissive parsing
// and the real filesystem.
func New(r runner.Runner, options ...Option) (*Lister, error) {
	options = append([]Option{WithDefaults()}, options...)

	l := &Lister{Runner: r}
	for _, opt := range options {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	if l.Profile == "" {
		l.Profile = profile.System(l.Root)
	}

	return l, nil
}

func WithDefaults() Option {
	return func(l *Lister) error {
		l.Resolver = profile.OS{}
		l.Root = profile.DefaultRoot
		l.Source = Sources[DefaultSource]
		return nil
	}
}

// WithRoot sets the directory holding the system-<id>-link entries.
func WithRoot(root string) Option {
	return func(l *Lister) error {
		if root != "" {
			l.Root = root
		}
		return nil
	}
}

// WithProfile sets the mutable profile whose generations are listed. It
// defaults to <root>/system.
func WithProfile(path string) Option {
	return func(l *Lister) error {
		if path != "" {
			l.Profile = path
		}
		return nil
	}
}

// WithSource selects a listing source by name.
func WithSource(name string) Option {
	return func(l *Lister) error {
		if name == "" {
			return nil
		}
		src, ok := Sources[name]
		if !ok {
			return fmt.Errorf("unknown listing source %q (want one of %s)", name, strings.Join(SourceNames(), ", "))
		}
		l.Source = src
		return nil
	}
}

// WithFormat overrides the line format of the selected source. It must come
// after WithSource.
func WithFormat(name string) Option {
	return func(l *Lister) error {
		if name == "" {
			return nil
		}
		f, err := ParseFormat(name)
		if err != nil {
			return err
		}
		l.Source.Format = f
		return nil
	}
}

func WithStrict(strict bool) Option {
	return func(l *Lister) error {
		l.Strict = strict
		return nil
	}
}

func WithResolver(r profile.Resolver) Option {
	return func(l *Lister) error {
		if r != nil {
			l.Resolver = r
		}
		return nil
	}
}

// List runs the source command, parses its output and marks the current
// generation. For clean listings the current generation comes from the
// profile link; failing to resolve it leaves every generation non-current.
func (l *Lister) List(ctx context.Context) ([]models.Generation, error) {
	res, err := l.Runner.Run(ctx, l.Source.Command, l.Source.Args(l.Profile)...)
	if err != nil {
		return nil, err
	}

	parser := Parser{Root: l.Root, Format: l.Source.Format, Strict: l.Strict}
	generations, err := parser.Parse(string(res.Stdout))
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed generations: source=%s count=%d", l.Source.Name, len(generations))

	if l.Source.Format == FormatClean {
		currentID, err := profile.Current(l.Resolver, l.Profile)
		if err != nil {
			log.Warnf("current generation unknown: %v", err)
			return generations, nil
		}
		MarkCurrent(generations, currentID)
	}

	return generations, nil
}

// MarkCurrent sets Current on the generation whose id is currentID and clears
// it on all others.
func MarkCurrent(generations []models.Generation, currentID string) {
	for i := range generations {
		generations[i].Current = generations[i].ID == currentID
	}
}

// SourceNames returns the known source names, sorted.
func SourceNames() []string {
	return []string{"nix-env", "nixos-rebuild"}
}
