// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package genspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nixtm/nix-timemach/internal/models"
	"github.com/nixtm/nix-timemach/internal/nixerr"
)

// Current is the spec naming the current generation.
const Current = "current"

// Defaults fills in missing diff specs. No spec compares the previous
// generation with the current one; a single spec is compared with the
// current one.
func Defaults(specs []string) []string {
	switch len(specs) {
	case 0:
		return []string{Current + "~1", Current}
	case 1:
		return []string{specs[0], Current}
	default:
		return specs
	}
}

// NeedsListing reports whether any spec can only be resolved against the
// generation listing.
func NeedsListing(specs ...string) bool {
	for _, spec := range specs {
		if !isID(spec) {
			return true
		}
	}
	return false
}

// Resolve maps each spec to a generation id. generations is in listing order,
// oldest first. A spec is one of:
//
//	42         - the generation with that id, passed through as is
//	current    - the current generation
//	current~N  - the N-th generation listed before the current one
//	0, -1, ... - relative index from the newest listed generation
func Resolve(generations []models.Generation, specs ...string) ([]string, error) {
	var result = []string{}

	for _, spec := range specs {
		id, err := resolveSpec(spec, generations)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}

	return result, nil
}

func resolveSpec(spec string, generations []models.Generation) (string, error) {
	spec = strings.TrimSpace(spec)

	switch {
	case isID(spec):
		i, _ := strconv.Atoi(spec)
		return strconv.Itoa(i), nil

	case strings.EqualFold(spec, Current) || strings.HasPrefix(strings.ToLower(spec), Current+"~"):
		return resolveCurrentSpec(spec, generations)

	case isRelative(spec):
		return resolveRelativeSpec(spec, generations)

	default:
		return "", nixerr.NewNotFoundError(spec, fmt.Errorf("unrecognized generation spec"))
	}
}

// resolveCurrentSpec handles current and current~N.
func resolveCurrentSpec(spec string, generations []models.Generation) (string, error) {
	offset := 0
	if _, n, ok := strings.Cut(spec, "~"); ok {
		i, err := strconv.Atoi(n)
		if err != nil || i < 0 {
			return "", nixerr.NewNotFoundError(spec, fmt.Errorf("invalid offset %q", n))
		}
		offset = i
	}

	at := -1
	for i, g := range generations {
		if g.Current {
			at = i
			break
		}
	}
	if at < 0 {
		return "", nixerr.NewNotFoundError(spec, fmt.Errorf("no current generation"))
	}

	index := at - offset
	if index < 0 {
		return "", nixerr.NewNotFoundError(spec, fmt.Errorf("offset %d out of range for %d earlier generations", offset, at))
	}

	return generations[index].ID, nil
}

// resolveRelativeSpec handles 0, -1, ... counted back from the newest entry.
func resolveRelativeSpec(spec string, generations []models.Generation) (string, error) {
	i, _ := strconv.Atoi(spec)
	index := len(generations) - 1 + i
	if index < 0 || index > len(generations)-1 {
		return "", nixerr.NewNotFoundError(spec, fmt.Errorf("index %d out of range for %d generations", i, len(generations)))
	}

	return generations[index].ID, nil
}

// isID reports whether spec is a plain positive generation number.
func isID(s string) bool {
	i, err := strconv.Atoi(s)
	return err == nil && i > 0 && !strings.HasPrefix(s, "+")
}

// isRelative reports whether spec is 0 or a negative number.
func isRelative(s string) bool {
	i, err := strconv.Atoi(s)
	return err == nil && i <= 0
}
