package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goatkit/adminshell/internal/config"
	"github.com/goatkit/adminshell/internal/menu"
	"github.com/goatkit/adminshell/internal/store"
)

func newMenuCmd(get func() *app) *cobra.Command {
	var (
		format string
		allow  []string
	)
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the composed navigation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "text" {
				format = formatTable
			}
			if err := checkFormat(format); err != nil {
				return err
			}
			a := get()

			var opts menu.Options
			if cmd.Flags().Changed("allow") {
				opts.Allow = func(permission string) bool { return slices.Contains(allow, permission) }
			}
			nav := menu.NewNavigator(a.registry, a.i18n, menu.DefaultBuiltins(), opts, a.logger)
			defer nav.Close()

			tree := nav.Tree()
			out := cmd.OutOrStdout()
			if done, err := encode(out, format, tree); done {
				return err
			}
			writeTree(out, tree)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "only show items whose permission is listed")
	return cmd
}

func newRoutesCmd(get func() *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of active plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			routes := get().registry.Routes()
			out := cmd.OutOrStdout()
			if done, err := encode(out, format, routes); done {
				return err
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "PLUGIN\tPATH\tCOMPONENT\tAUTH")
			for _, r := range routes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", r.PluginID, r.Path, r.Component, r.RequiresAuth)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newWatchCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Apply activation changes written to the state file by other processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			fs, ok := a.store.(*store.FileStore)
			if !ok || a.cfg.State.Backend != config.BackendFile {
				return fmt.Errorf("watch needs the %s state backend, got %s", config.BackendFile, a.cfg.State.Backend)
			}
			ctx := cmd.Context()
			return fs.Watch(ctx, store.DefaultDebounce, func() {
				results, err := a.registry.Sync(context.WithoutCancel(ctx))
				if err != nil {
					a.logger.Error("sync failed", "error", err)
					return
				}
				for _, r := range results {
					if !r.OK() {
						a.logger.Warn("plugin not synced", "plugin", r.ID, "code", r.Code, "error", r.Err)
					}
				}
			})
		},
	}
}
