// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/nixtm/nix-timemach/internal/cacheutil"
	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/nixerr"
	"github.com/nixtm/nix-timemach/internal/profile"
	"github.com/nixtm/nix-timemach/internal/runner"
)

// ResolveStrategy selects what a generation id is turned into before its
// dependencies are queried.
type ResolveStrategy string

const (
	// ResolveLink uses the <root>/system-<id>-link path directly.
	ResolveLink ResolveStrategy = "link"
	// ResolveStore asks the toolchain for the profile's recorded store path.
	ResolveStore ResolveStrategy = "store"
)

// ClassifyStrategy selects how the delta is computed.
type ClassifyStrategy string

const (
	// ClassifyHeuristic queries both direct dependency sets and runs Classify.
	ClassifyHeuristic ClassifyStrategy = "heuristic"
	// ClassifyTool delegates to the external structural diff tool.
	ClassifyTool ClassifyStrategy = "tool"
)

// Differ computes the GenerationDiff between two generations of a profile.
type Differ struct {
	Runner   runner.Runner
	Resolver profile.Resolver
	Root     string
	Resolve  ResolveStrategy
	Classify ClassifyStrategy
	// Cache enables the on-disk dependency cache for store paths.
	Cache bool
}

// Option configures a Differ.
type Option = func(d *Differ) error

// New returns a Differ running commands through r. Defaults are the NixOS
// profile root, link resolution, heuristic classification and no cache.
func New(r runner.Runner, options ...Option) (*Differ, error) {
	options = append([]Option{WithDefaults()}, options...)

	d := &Differ{Runner: r}
	for _, opt := range options {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func WithDefaults() Option {
	return func(d *Differ) error {
		d.Resolver = profile.OS{}
		d.Root = profile.DefaultRoot
		d.Resolve = ResolveLink
		d.Classify = ClassifyHeuristic
		return nil
	}
}

func WithRoot(root string) Option {
	return func(d *Differ) error {
		if root != "" {
			d.Root = root
		}
		return nil
	}
}

func WithResolver(r profile.Resolver) Option {
	return func(d *Differ) error {
		if r != nil {
			d.Resolver = r
		}
		return nil
	}
}

// WithResolve selects the resolution strategy by name.
func WithResolve(name string) Option {
	return func(d *Differ) error {
		switch s := ResolveStrategy(name); s {
		case "":
		case ResolveLink, ResolveStore:
			d.Resolve = s
		default:
			return fmt.Errorf("unknown resolve strategy %q (want %s or %s)", name, ResolveLink, ResolveStore)
		}
		return nil
	}
}

// WithClassify selects the classification strategy by name.
func WithClassify(name string) Option {
	return func(d *Differ) error {
		switch s := ClassifyStrategy(name); s {
		case "":
		case ClassifyHeuristic, ClassifyTool:
			d.Classify = s
		default:
			return fmt.Errorf("unknown classify strategy %q (want %s or %s)", name, ClassifyHeuristic, ClassifyTool)
		}
		return nil
	}
}

func WithCache(enabled bool) Option {
	return func(d *Differ) error {
		d.Cache = enabled
		return nil
	}
}

// Diff resolves both generation ids and classifies the delta between them.
func (d *Differ) Diff(ctx context.Context, from, to string) (models.GenerationDiff, error) {
	log.Debugf("diff: from=%s to=%s resolve=%s classify=%s", from, to, d.Resolve, d.Classify)

	fromPath, toPath, err := d.resolvePair(ctx, from, to)
	if err != nil {
		return models.GenerationDiff{}, err
	}

	if d.Classify == ClassifyTool {
		res, err := d.Runner.Run(ctx, "nix-diff", fromPath, toPath)
		if err != nil {
			return models.GenerationDiff{}, err
		}
		return ParseToolOutput(string(res.Stdout))
	}

	fromRefs, toRefs, err := d.referencePair(ctx, fromPath, toPath)
	if err != nil {
		return models.GenerationDiff{}, err
	}

	return Classify(fromRefs, toRefs), nil
}

// References returns the direct dependency sets of both generations, in the
// order the toolchain printed them.
func (d *Differ) References(ctx context.Context, from, to string) ([]string, []string, error) {
	fromPath, toPath, err := d.resolvePair(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	return d.referencePair(ctx, fromPath, toPath)
}

// ResolvePath turns a generation id into the path handed to the toolchain.
func (d *Differ) ResolvePath(ctx context.Context, id string) (string, error) {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", nixerr.NewNotFoundError(id, errors.New("not a generation number"))
	}

	link := profile.Link(d.Root, id)
	if d.Resolve != ResolveStore {
		if !d.Resolver.Exists(link) {
			return "", nixerr.NewNotFoundError(id, fmt.Errorf("%s does not exist", link))
		}
		return link, nil
	}

	res, err := d.Runner.Run(ctx, "nix-env", "-p", link, "--query", "--out-path")
	if err != nil {
		return "", nixerr.NewNotFoundError(id, err)
	}

	return parseOutPath(string(res.Stdout))
}

// Dependencies returns the direct dependency set of path.
func (d *Differ) Dependencies(ctx context.Context, path string) ([]string, error) {
	useCache := d.Cache && d.Resolve == ResolveStore
	if useCache {
		if refs, ok := cacheutil.ReadReferences(path); ok {
			return refs, nil
		}
	}

	res, err := d.Runner.Run(ctx, "nix-store", "-q", "--references", path)
	if err != nil {
		return nil, err
	}

	refs := runner.Lines(res.Stdout)
	for _, ref := range refs {
		if strings.ContainsAny(ref, " \t") {
			return nil, nixerr.NewParseError("unexpected dependency line for "+path, ref, nil)
		}
	}

	if useCache {
		if err := cacheutil.WriteReferences(path, refs); err != nil {
			log.WithError(err).Warnf("failed to cache references for %s", path)
		}
	}

	return refs, nil
}

func (d *Differ) resolvePair(ctx context.Context, from, to string) (string, string, error) {
	fromPath, err := d.ResolvePath(ctx, from)
	if err != nil {
		return "", "", err
	}
	toPath, err := d.ResolvePath(ctx, to)
	if err != nil {
		return "", "", err
	}
	log.Debugf("resolved: from=%s to=%s", fromPath, toPath)
	return fromPath, toPath, nil
}

// referencePair queries both dependency sets concurrently.
func (d *Differ) referencePair(ctx context.Context, fromPath, toPath string) ([]string, []string, error) {
	var fromRefs, toRefs []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fromRefs, err = d.Dependencies(gctx, fromPath)
		return err
	})
	g.Go(func() error {
		var err error
		toRefs, err = d.Dependencies(gctx, toPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	log.Debugf("references: from=%d to=%d", len(fromRefs), len(toRefs))
	return fromRefs, toRefs, nil
}

// parseOutPath picks the store path out of `nix-env --query --out-path`,
// which prints "<name>  <path>" or just "<path>".
func parseOutPath(output string) (string, error) {
	lines := runner.Lines([]byte(output))
	if len(lines) == 0 {
		return "", nixerr.NewParseError("empty output path", output, nil)
	}

	fields := strings.Fields(lines[len(lines)-1])
	path := fields[len(fields)-1]
	if !strings.HasPrefix(path, "/") {
		return "", nixerr.NewParseError("output path is not absolute", lines[len(lines)-1], nil)
	}
	return path, nil
}
