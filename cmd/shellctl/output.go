package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/goatkit/adminshell/internal/menu"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (table, json or yaml)", f)
}

// encode writes v as json or yaml. It reports false for the table format so
// the caller renders its own table.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeTree(w io.Writer, tree menu.Tree) {
	for i, g := range tree.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, g.Title)
		writeItems(w, g.Items, 1)
	}
}

func writeItems(w io.Writer, items []menu.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		line := indent + it.Title
		if it.Path != "" {
			line += "  " + it.Path
		}
		if it.PluginID != "" {
			line += "  [" + it.PluginID + "]"
		}
		fmt.Fprintln(w, line)
		writeItems(w, it.Items, depth+1)
	}
}
