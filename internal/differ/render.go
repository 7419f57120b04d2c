// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// RenderDelta writes an ASCII structural diff of two dependency sets to w.
// Both sets are sorted first so that the rendering lines up package by
// package.
func RenderDelta(w io.Writer, from, to []string, coloring bool) error {
	left, err := referencesDoc(from)
	if err != nil {
		return err
	}
	right, err := referencesDoc(to)
	if err != nil {
		return err
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare references: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The generations are identical.")
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal references: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	})
	out, err := f.Format(delta)
	if err != nil {
		return err
	}
	log.Debugf("delta rendered: bytes=%d", len(out))

	fmt.Fprintln(w, out)
	return nil
}

func referencesDoc(refs []string) ([]byte, error) {
	sorted := slices.Clone(dedupe(refs))
	slices.Sort(sorted)
	doc, err := json.Marshal(map[string][]string{"references": sorted})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal references: %w", err)
	}
	return doc, nil
}
