// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/differ"
	"github.com/nixtm/nix-timemach/internal/lister"
	"github.com/nixtm/nix-timemach/internal/output"
	"github.com/nixtm/nix-timemach/internal/profile"
)

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// NewGlobalFlags returns the output flags shared by the result commands. ns
// is the config namespace, cfgFile the config file, and extraOutputs any
// --output values the command accepts beyond the common ones.
func NewGlobalFlags(ns string, cfgFile string, extraOutputs ...string) (flags []cli.Flag) {
	outputs := []string{output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML}
	outputs = append(outputs, extraOutputs...)

	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   output.FormatJSON,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_OUTPUT"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator(outputs...))
		},
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output (default: when stdout is a terminal)",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
		},
	}

	addConfigSources(ns, cfgFile, "output", &outputFlag.Sources)
	flags = append(flags, outputFlag)

	return
}

// NewProfilesFlag is the directory holding the system-<id>-link entries.
func NewProfilesFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "profiles",
		Usage: "directory holding the system-<id>-link profile links",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_PROFILES"),
		),
		Value: profile.DefaultRoot,
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewProfileFlag is the mutable profile whose generations are listed.
func NewProfileFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "profile to list (default: <profiles>/system)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_PROFILE"),
		),
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewSourceFlag selects the command that lists generations.
func NewSourceFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "source",
		Usage: "generation listing command (nix-env or nixos-rebuild)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_SOURCE"),
		),
		Value: lister.DefaultSource,
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator(lister.SourceNames()...))
		},
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewFormatFlag overrides the listing line format of the source.
func NewFormatFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "format",
		Usage: "listing line format, clean or marked (default: per source)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_FORMAT"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator("clean", "marked"))
		},
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewStrictFlag makes unparseable timestamps fatal.
func NewStrictFlag(params ...string) *cli.BoolFlag {
	flag := &cli.BoolFlag{
		Name:  "strict",
		Usage: "fail on malformed listing lines instead of skipping them",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_STRICT"),
		),
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewResolveFlag selects how a generation id becomes a path.
func NewResolveFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "resolve",
		Usage: "resolve generations to their profile link or their store path (link or store)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_RESOLVE"),
		),
		Value: string(differ.ResolveLink),
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator(string(differ.ResolveLink), string(differ.ResolveStore)))
		},
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewClassifyFlag selects how the delta is computed.
func NewClassifyFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "classify",
		Usage: "classify changes by dependency sets or with nix-diff (heuristic or tool)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_CLASSIFY"),
		),
		Value: string(differ.ClassifyHeuristic),
		Validator: func(value string) error {
			return FlagValidators(value, OneOfValidator(string(differ.ClassifyHeuristic), string(differ.ClassifyTool)))
		},
	}
	return withConfig(flag, &flag.Sources, params...)
}

// NewTimeoutFlag bounds each toolchain command. The config file setting is
// read by NewRunner, which also accepts plain seconds.
func NewTimeoutFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "timeout for each toolchain command, 0 for none",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTM_TIMEOUT"),
		),
		Value: time.Duration(0),
	}
}

// withConfig adds the config file sources for flag when params carries a
// namespace and a config file.
func withConfig[F cli.Flag](flag F, chain *cli.ValueSourceChain, params ...string) F {
	if len(params) == 2 {
		addConfigSources(params[0], params[1], flag.Names()[0], chain)
	}
	return flag
}

// addConfigSources appends the namespaced and then the global config file
// key for name to chain.
func addConfigSources(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}

	src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)

	src = yaml.YAML(name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)
}

// pathHas reports whether target is an executable in PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
