package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goatkit/adminshell/internal/apierrors"
	"github.com/goatkit/adminshell/internal/i18n"
	"github.com/goatkit/adminshell/internal/plugin"
	"github.com/goatkit/adminshell/internal/plugin/manifest"
)

func newPluginsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"plugin"},
		Short:   "List and manage plugins",
	}
	cmd.AddCommand(
		newListCmd(get),
		newToggleCmd(get, true),
		newToggleCmd(get, false),
		newExportCmd(get),
		newSyncCmd(get),
	)
	return cmd
}

// pluginRow is one line of `plugins list`.
type pluginRow struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Version     string `json:"version"     yaml:"version"`
	State       string `json:"state"       yaml:"state"`
	Active      bool   `json:"active"      yaml:"active"`
	Description string `json:"description" yaml:"description"`
}

func newListCmd(get func() *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			a := get()
			t := a.i18n.Func()

			var rows []pluginRow
			for _, d := range a.registry.List() {
				info := d.Localized(t)
				state := a.registry.State(d.ID)
				rows = append(rows, pluginRow{
					ID:          info.ID,
					Name:        info.Name,
					Version:     info.Version,
					State:       state.String(),
					Active:      state == plugin.StateActive,
					Description: info.Description,
				})
			}

			out := cmd.OutOrStdout()
			if done, err := encode(out, format, rows); done {
				return err
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tNAME\tVERSION\tSTATE\tDESCRIPTION")
			for _, r := range rows {
				label := t(i18n.CoreNamespace, "plugins.state."+r.State, r.State)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Version, label, r.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newToggleCmd(get func() *app, enable bool) *cobra.Command {
	use, short := "disable", "Deactivate plugins"
	if enable {
		use, short = "enable", "Activate plugins"
	}
	var all bool
	cmd := &cobra.Command{
		Use:   use + " [ID...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ids := args
			if all {
				ids = ids[:0]
				for _, d := range a.registry.List() {
					ids = append(ids, d.ID)
				}
			}
			if len(ids) == 0 {
				return fmt.Errorf("name at least one plugin or pass --all")
			}

			var results []plugin.BatchResult
			if enable {
				results = a.registry.ActivateMany(cmd.Context(), ids)
			} else {
				results = a.registry.DeactivateMany(cmd.Context(), ids)
			}
			return reportResults(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "apply to every registered plugin")
	return cmd
}

func newSyncCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Re-apply the persisted activation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := get().registry.Sync(cmd.Context())
			if err != nil {
				return err
			}
			return reportResults(cmd.OutOrStdout(), results)
		},
	}
}

// reportResults prints one line per id and fails when any id failed.
func reportResults(w io.Writer, results []plugin.BatchResult) error {
	tw := newTable(w)
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(tw, "%s\tok\n", r.ID)
			continue
		}
		fmt.Fprintf(tw, "%s\tfailed\t%s\t%s\n", r.ID, r.Code, apierrors.Registry.Message(r.Code))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed := plugin.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d plugins failed", len(failed), len(results))
	}
	return nil
}

func newExportCmd(get func() *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export [ID...]",
		Short: "Write plugin manifests as YAML",
		Long:  "Write the manifests of the named plugins, or of all registered plugins, as a multi-document YAML stream.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			descs := a.registry.List()
			if len(args) > 0 {
				descs = descs[:0]
				for _, id := range args {
					d, err := a.registry.Get(id)
					if err != nil {
						return err
					}
					descs = append(descs, d)
				}
			}

			w := cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			if err := manifest.Export(w, descs); err != nil {
				return err
			}
			a.logger.Debug("plugins exported", "count", len(descs), "to", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write to file instead of stdout")
	return cmd
}
