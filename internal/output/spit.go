// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/nixtm/nix-timemach/internal/attrs"
	"github.com/nixtm/nix-timemach/internal/config"
	"github.com/nixtm/nix-timemach/internal/filters"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatText  = "text"
	FormatRaw   = "raw"
	FormatDelta = "delta"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Numbers in our documents are whole.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case []interface{}:
		// Lists of scalars, like profiles, read better joined.
		parts := make([]string, 0, len(value))
		for _, v := range value {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
				b, _ := json.Marshal(value)
				return string(b)
			}
			parts = append(parts, InterfaceToString(v))
		}
		return strings.Join(parts, ",")
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Shaped reports whether cmd asks for the result to be reshaped into rows
// rather than emitted as its document.
func Shaped(cmd *cli.Command) bool {
	return cmd.IsSet("attrs") ||
		cmd.String("filter") != "" ||
		cmd.String("sort") != "" ||
		cmd.Bool("local")
}

// ColorEnabled reports whether text output should be colored. An explicit
// --color wins; otherwise color follows whether stdout is a terminal, unless
// NO_COLOR is set.
func ColorEnabled(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Emit writes a command result to w in the format selected by --output.
// doc is the result's JSON document and rows the same result as a JSON array
// of flat objects, used for text output and whenever the result is shaped by
// --attrs, --filter, --sort or --local.
func Emit(w io.Writer, cmd *cli.Command, doc []byte, rows []byte, attrList attrs.AttrList,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	format := cmd.String("output")
	switch {
	case format == FormatRaw:
		_, err := w.Write(doc)
		return err
	case (format == FormatJSON || format == FormatYAML) && !Shaped(cmd):
		return EmitDocument(w, doc, format)
	default:
		return SliceDiceSpit(*bytes.NewBuffer(rows), attrList, cmd, w, postProcess)
	}
}

// EmitDocument writes a JSON document as json or yaml. JSON is written as is,
// so its bytes stay exactly those of the encoder. YAML keeps the document's
// key order.
func EmitDocument(w io.Writer, doc []byte, format string) error {
	switch format {
	case FormatJSON:
		if _, err := w.Write(doc); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case FormatYAML:
		out, err := yamlFromJSON(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
}

// yamlFromJSON reencodes a JSON document as YAML. JSON is a subset of YAML
// so yaml.v2 reads it directly into ordered MapSlices.
func yamlFromJSON(doc []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(doc)

	var v interface{}
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var items []yaml.MapSlice
		if err := yaml.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to convert document to yaml: %w", err)
		}
		if items == nil {
			items = []yaml.MapSlice{}
		}
		v = items
	} else {
		var item yaml.MapSlice
		if err := yaml.Unmarshal(trimmed, &item); err != nil {
			return nil, fmt.Errorf("failed to convert document to yaml: %w", err)
		}
		v = item
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal yaml: %w", err)
	}
	return out, nil
}

// SliceDiceSpit filters, transforms, sorts and renders a JSON array of rows
// according to the command's flags. The optional postProcess callback runs on
// the final dataset before text rendering.
func SliceDiceSpit(raw bytes.Buffer,
	attrList attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	output := cmd.String("output")
	if output == FormatRaw {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.Parse(raw.String())
	filteredDataset := filters.FilterDataset(fullDataset, attrList, cmd.String("filter"))

	if cmd.Bool("local") {
		for a := range attrList {
			attrList[a].TransformSpec += "t"
		}
	}

	for _, row := range filteredDataset {
		for _, attr := range attrList {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(filteredDataset, cmd.String("sort"))

	switch output {
	case FormatJSON, FormatYAML:
		// Attrs only used for filtering and sorting are dropped here.
		visible := make([]map[string]interface{}, 0, len(filteredDataset))
		for _, row := range filteredDataset {
			out := make(map[string]interface{}, len(attrList))
			for _, attr := range attrList.Included() {
				out[attr.OutputKey] = row[attr.OutputKey]
			}
			visible = append(visible, out)
		}

		var (
			b   []byte
			err error
		)
		if output == FormatJSON {
			b, err = json.Marshal(visible)
			b = append(b, '\n')
		} else {
			b, err = yaml.Marshal(visible)
		}
		if err != nil {
			log.Errorf("SliceDiceSpit %s marshal: %v", output, err)
			return fmt.Errorf("failed to encode %s output: %w", output, err)
		}
		_, err = w.Write(b)
		return err
	default:
		if postProcess != nil {
			if err := postProcess(filteredDataset); err != nil {
				log.Errorf("PostProcess: %v", err)
			}
		}

		TableWriter(filteredDataset, attrList, cmd, w)
	}

	return nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	attrList attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if ColorEnabled(cmd) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	included := attrList.Included()

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if header, ok := cmd.Metadata["header"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(header))
	}

	pad := 2
	if cmd.IsSet("padding") {
		pad = cmd.Int("padding")
	} else if p, err := config.GetInt("padding"); err == nil {
		pad = p
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	// lipgloss pads cells with no-break spaces.
	fmt.Fprintln(w, strings.ReplaceAll(t.String(), "\u00a0", " "))

	if footer, ok := cmd.Metadata["footer"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(footer))
	}
}

// getColors returns configured color values for table rendering. Without
// configured colors, defaults are picked for the terminal's background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#5277c3", "#7ebae4")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
