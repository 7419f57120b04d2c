// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/nixerr"
)

// PackageName returns the second hyphen-delimited segment of a dependency
// identifier ("<hash>-<name>-<version>"), or "" when there is none. Names
// that contain a hyphen are truncated and malformed identifiers all share the
// empty name. Both are accepted for compatibility with existing consumers.
func PackageName(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Classify computes the three-way delta between two dependency sets.
//
//   - Added is to minus from, in to order.
//   - Removed is from minus to, in from order.
//   - Modified is every element of from whose PackageName matches that of a
//     different element of to, in from order.
//
// Modified is computed independently of Removed, so an element may appear in
// both. Duplicates in either input are ignored.
func Classify(from, to []string) models.GenerationDiff {
	from = dedupe(from)
	to = dedupe(to)

	inFrom := make(map[string]bool, len(from))
	for _, x := range from {
		inFrom[x] = true
	}

	inTo := make(map[string]bool, len(to))
	byName := make(map[string][]string)
	for _, y := range to {
		inTo[y] = true
		name := PackageName(y)
		byName[name] = append(byName[name], y)
	}

	diff := models.GenerationDiff{
		Added:    []string{},
		Removed:  []string{},
		Modified: []string{},
	}

	for _, y := range to {
		if !inFrom[y] {
			diff.Added = append(diff.Added, y)
		}
	}

	for _, x := range from {
		if !inTo[x] {
			diff.Removed = append(diff.Removed, x)
		}

		for _, y := range byName[PackageName(x)] {
			if y != x {
				diff.Modified = append(diff.Modified, x)
				break
			}
		}
	}

	return diff
}

// ParseToolOutput reads the line-oriented output of the structural diff
// tool. Lines starting with +, - or ~ (after trimming) land in added, removed
// or modified with the marker and surrounding whitespace removed. Other lines
// are commentary and are ignored. A marker with nothing after it is a
// ParseFailure.
func ParseToolOutput(output string) (models.GenerationDiff, error) {
	diff := models.GenerationDiff{
		Added:    []string{},
		Removed:  []string{},
		Modified: []string{},
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var bucket *[]string
		switch line[0] {
		case '+':
			bucket = &diff.Added
		case '-':
			bucket = &diff.Removed
		case '~':
			bucket = &diff.Modified
		default:
			continue
		}

		item := strings.TrimSpace(line[1:])
		if item == "" {
			return models.GenerationDiff{}, nixerr.NewParseError(fmt.Sprintf("empty diff entry on line %d", lineNo), line, nil)
		}
		*bucket = append(*bucket, item)
	}

	if err := scanner.Err(); err != nil {
		return models.GenerationDiff{}, nixerr.NewParseError("failed to read diff output", "", err)
	}

	return diff, nil
}

// dedupe drops repeated elements, keeping first occurrences in order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
