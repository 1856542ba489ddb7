package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/goatkit/adminshell/internal/config"
)

// version is set at build time.
var version = "dev"

// session holds the app built by a command run until it is closed.
type session struct {
	app    *app
	closed bool
}

// Close releases the app's store connections. It is safe to call more than
// once and when no app was built.
func (s *session) Close() error {
	if s.app == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.app.Close()
}

// execute runs root and closes the session afterwards. Cobra skips the
// post-run hooks when a command fails, so closing happens here.
func execute(ctx context.Context, root *cobra.Command, sess *session) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, sess.Close())
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *session) {
	var (
		cfgPath     string
		lang        string
		dumpMetrics bool
	)
	sess := &session{}

	root := &cobra.Command{
		Use:           "shellctl",
		Short:         "Manage admin shell plugins",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if lang != "" {
				cfg.Language = lang
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			sess.app, err = newApp(cmd.Context(), cfg, errOut)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if sess.app == nil || !dumpMetrics {
				return nil
			}
			return writeMetrics(errOut, sess.app)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./adminshell.yaml)")
	root.PersistentFlags().StringVar(&lang, "lang", "", "display language, overrides the config")
	root.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "print registry metrics to stderr when done")

	get := func() *app { return sess.app }
	root.AddCommand(
		newPluginsCmd(get),
		newMenuCmd(get),
		newRoutesCmd(get),
		newWatchCmd(get),
	)
	return root, sess
}

func writeMetrics(w io.Writer, a *app) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
