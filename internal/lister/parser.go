// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lister

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nixtm/nix-timemach/internal/log"
	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/nixerr"
	"github.com/nixtm/nix-timemach/internal/profile"
)

// Format selects the shape of the id column.
type Format int

const (
	// FormatClean is a bare integer id column. The current generation is
	// found separately through the profile link. (nix-env)
	FormatClean Format = iota
	// FormatMarked allows the literal word "current" right after the id.
	// (nixos-rebuild)
	FormatMarked
)

func (f Format) String() string {
	switch f {
	case FormatClean:
		return "clean"
	case FormatMarked:
		return "marked"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clean":
		return FormatClean, nil
	case "marked":
		return FormatMarked, nil
	default:
		return 0, fmt.Errorf("unknown listing format %q (want clean or marked)", s)
	}
}

// CurrentDescription is the description given to the marked generation in
// FormatMarked listings.
const CurrentDescription = "(current)"

// timestampLayout is the toolchain's naive YYYY-MM-DD HH:MM:SS, read as UTC.
const timestampLayout = "2006-01-02 15:04:05"

// Each regex captures id, marker (marked only), date, time and the optional
// free-text remainder.
var (
	cleanLineRegex = regexp.MustCompile(
		`^\s*(\d+)()\s+(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2}:\d{2})(?:\s+(.*))?$`,
	)
	markedLineRegex = regexp.MustCompile(
		`^\s*(\d+)(?:\s*(current))?\s+(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2}:\d{2})(?:\s+(.*))?$`,
	)
)

// Parser turns generation listing text into Generation records. In
// permissive mode (Strict false) a line whose timestamp does not parse is
// dropped; in strict mode it aborts the parse with a ParseFailure. Lines that
// do not match the line format are always skipped.
type Parser struct {
	Root   string
	Format Format
	Strict bool
}

// Parse returns the generations of output in line order. Current is only set
// here for FormatMarked listings.
func (p Parser) Parse(output string) ([]models.Generation, error) {
	re := cleanLineRegex
	if p.Format == FormatMarked {
		re = markedLineRegex
	}

	root := p.Root
	if root == "" {
		root = profile.DefaultRoot
	}

	generations := []models.Generation{}
	seen := map[string]bool{}

	for i, line := range strings.Split(output, "\n") {
		lineNo := i + 1
		line = strings.TrimRight(line, "\r")

		matches := re.FindStringSubmatch(line)
		if matches == nil {
			log.Tracef("skipping line: n=%d line=%q", lineNo, line)
			continue
		}

		id := matches[1]
		marked := matches[2] != ""

		ts, err := time.ParseInLocation(timestampLayout, matches[3]+" "+matches[4], time.UTC)
		if err != nil {
			if p.Strict {
				return nil, nixerr.NewParseError(fmt.Sprintf("bad timestamp on line %d", lineNo), line, err)
			}
			log.Debugf("dropping line with bad timestamp: n=%d err=%v", lineNo, err)
			continue
		}

		if seen[id] {
			if p.Strict {
				return nil, nixerr.NewParseError(fmt.Sprintf("duplicate generation id on line %d", lineNo), line, nil)
			}
			log.Warnf("dropping duplicate generation id: n=%d id=%s", lineNo, id)
			continue
		}
		seen[id] = true

		generations = append(generations, models.Generation{
			ID:          id,
			Timestamp:   ts,
			Description: p.description(marked, matches[5]),
			Profiles:    profile.Profiles(root, id),
			Current:     marked,
		})
	}

	return generations, nil
}

// description applies the per-format description rule.
func (p Parser) description(marked bool, remainder string) *string {
	if p.Format == FormatMarked {
		if marked {
			return models.StringPtr(CurrentDescription)
		}
		return nil
	}

	if remainder = strings.TrimSpace(remainder); remainder == "" {
		return nil
	}
	return models.StringPtr(remainder)
}
