// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/attrs"
)

const listing = `[{"id":"9","timestamp":"2024-02-09T10:00:00Z","description":"nixos-23.11","profiles":["/p/system-9-link"],"current":false},` +
	`{"id":"10","timestamp":"2024-03-01T10:00:00Z","description":null,"profiles":["/p/system-10-link"],"current":true}]`

func defaultAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	var list attrs.AttrList
	require.NoError(t, list.Set("id,timestamp,description,profiles,current"))
	return list
}

// emit runs Emit inside a real command so flags are parsed the way the CLI
// parses them.
func emit(t *testing.T, args []string, doc string, list attrs.AttrList) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "attrs"},
			&cli.BoolFlag{Name: "color"},
			&cli.StringFlag{Name: "filter"},
			&cli.BoolFlag{Name: "local"},
			&cli.StringFlag{Name: "output", Value: "json"},
			&cli.IntFlag{Name: "padding", Value: 2},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return Emit(&buf, c, []byte(doc), []byte(doc), list, nil)
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return buf.String()
}

func TestEmitDocumentJSON(t *testing.T) {
	out := emit(t, nil, listing, defaultAttrs(t))
	assert.Equal(t, listing+"\n", out)
}

func TestEmitRaw(t *testing.T) {
	out := emit(t, []string{"--output", "raw", "--sort", "id"}, listing, defaultAttrs(t))
	assert.Equal(t, listing, out)
}

func TestEmitDocumentYAML(t *testing.T) {
	out := emit(t, []string{"--output", "yaml"}, listing, defaultAttrs(t))

	assert.True(t, strings.HasPrefix(out, "- id: \"9\"\n  timestamp:"), out)
	assert.Contains(t, out, "description: null")
	assert.Contains(t, out, "- /p/system-10-link")
	assert.Contains(t, out, "current: true")
}

func TestEmitShapedJSON(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIDs []string
	}{
		{name: "sort numeric ids descending", args: []string{"--sort", "-id"}, wantIDs: []string{"10", "9"}},
		{name: "sort numeric ids ascending", args: []string{"--sort", "id"}, wantIDs: []string{"9", "10"}},
		{name: "filter current", args: []string{"--filter", "current"}, wantIDs: []string{"10"}},
		{name: "filter nothing", args: []string{"--filter", "id=99"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := emit(t, append([]string{"--output", "json"}, tt.args...), listing, defaultAttrs(t))

			var rows []map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(out), &rows))
			ids := []string{}
			for _, row := range rows {
				ids = append(ids, row["id"].(string))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestEmitShapedDropsHiddenAttrs(t *testing.T) {
	var list attrs.AttrList
	require.NoError(t, list.Set("id:generation,!current"))

	out := emit(t, []string{"--attrs", "id:generation,!current", "--filter", "current"}, listing, list)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []map[string]interface{}{{"generation": "10"}}, rows)
}

func TestEmitText(t *testing.T) {
	out := emit(t, []string{"--output", "text", "--titles", "--color=false"}, listing, defaultAttrs(t))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "id")
	assert.Contains(t, lines[0], "description")
	assert.Contains(t, lines[1], "nixos-23.11")
	assert.Contains(t, lines[1], "/p/system-9-link")
	// A null description renders as -.
	assert.Contains(t, lines[2], " - ")
	assert.NotContains(t, out, "\u00a0")
	assert.Contains(t, lines[2], "true")
}

func TestEmitTextEmpty(t *testing.T) {
	out := emit(t, []string{"--output", "text"}, "[]", defaultAttrs(t))
	assert.Empty(t, out)
}

func TestEmitDocumentUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EmitDocument(&buf, []byte(`{}`), "xml"))
}

func TestYAMLFromJSONObject(t *testing.T) {
	out, err := yamlFromJSON([]byte(`{"added":["b"],"removed":[],"modified":["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, "added:\n- b\nremoved: []\nmodified:\n- a\n", string(out))
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0, "id": "10"},
		{"name": "alpha", "count": 1.0, "id": "9"},
		{"name": "Beta", "count": 2.0, "id": "100"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "Beta", "alpha"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Beta", "alpha", "zebra"}},
		{name: "ascending by count", spec: "count", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "numeric string ids", spec: "id", wantOrder: []string{"alpha", "zebra", "Beta"}},
		{name: "descending ids", spec: "-id", wantOrder: []string{"Beta", "zebra", "alpha"}},
		{name: "empty spec", spec: "", wantOrder: []string{"zebra", "alpha", "Beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float64", value: 42.0, want: "42"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "scalar list", value: []interface{}{"/p/system-1-link", "/p/other"}, want: "/p/system-1-link,/p/other"},
		{name: "nested list", value: []interface{}{map[string]interface{}{"k": "v"}}, want: `[{"k":"v"}]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorEnabledExplicit(t *testing.T) {
	colorFor := func(args ...string) bool {
		var got bool
		cmd := &cli.Command{
			Name:  "test",
			Flags: []cli.Flag{&cli.BoolFlag{Name: "color"}},
			Action: func(_ context.Context, c *cli.Command) error {
				got = ColorEnabled(c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
		return got
	}

	assert.True(t, colorFor("--color"))
	assert.False(t, colorFor("--color=false"))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorFor())
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
