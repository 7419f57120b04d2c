// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders the markdown and tldr pages for every nix-timemach
// subcommand. Flags come from the live command tree; descriptions and
// examples come from templates/nix-timemach.yaml.
package main

import (
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/nixtm/nix-timemach/internal/command"
	"github.com/nixtm/nix-timemach/internal/meta"
)

//go:embed templates
var templates embed.FS

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Usage     string
	UsageText string
	Flags     []Flag
	Date      string
	Version   string
}

type Outputs struct {
	Template string
	Folder   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}

	files, err := generate(os.Args[1], getVersion(), time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Println("Generated", f)
	}
}

// generate writes one page per subcommand and output type beneath docs and
// returns the written paths.
func generate(docs string, version string, now time.Time) ([]string, error) {
	data, err := templates.ReadFile("templates/nix-timemach.yaml")
	if err != nil {
		return nil, err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse docs metadata: %w", err)
	}

	app := command.NewApp(meta.Meta{})

	types := []Outputs{
		{Template: "nix-timemach.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "nix-timemach.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Suffix: ".md"},
	}

	var written []string
	for _, sub := range config.Subcommands {
		cmd := findCommand(app, sub.ID)
		if cmd == nil {
			return written, fmt.Errorf("no such subcommand: %s", sub.ID)
		}

		metadata := TemplateData{
			Subcommand: sub,
			Usage:      cmd.Usage,
			UsageText:  cmd.UsageText,
			Flags:      flagsOf(cmd),
			Date:       now.Format("January 2, 2006"),
			Version:    version,
		}
		if metadata.UsageText == "" {
			metadata.UsageText = "nix-timemach " + cmd.Name + " [options]"
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil { //nolint:mnd
				return written, err
			}

			tmpl, err := template.ParseFS(templates, "templates/"+t.Template)
			if err != nil {
				return written, err
			}

			path := filepath.Join(t.Folder, "nix-timemach-"+sub.ID+t.Suffix)
			file, err := os.Create(path)
			if err != nil {
				return written, err
			}
			err = tmpl.Execute(file, metadata)
			file.Close()
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	return written, nil
}

func findCommand(app *cli.Command, name string) *cli.Command {
	for _, c := range app.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flagsOf returns the visible flags of cmd sorted by name.
func flagsOf(cmd *cli.Command) []Flag {
	var flags []Flag
	for _, f := range cmd.Flags {
		if v, ok := f.(cli.VisibleFlag); ok && !v.IsVisible() {
			continue
		}

		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if d, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = d.GetUsage()
			if d.TakesValue() {
				flag.Default = d.GetDefaultText()
			}
		}
		flags = append(flags, flag)
	}

	sort.Slice(flags, func(i, j int) bool {
		return flags[i].ID < flags[j].ID
	})
	return flags
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
