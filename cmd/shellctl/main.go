// Command shellctl manages the plugins of the admin shell: list them,
// enable or disable them, export their manifests and inspect the composed
// navigation and routes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, sess := newRootCmd(os.Stdout, os.Stderr)
	if err := execute(ctx, cmd, sess); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
