package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitlite/flowgraph/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and flow-grouping API over HTTP",
		Long: `Serve the layout and flow-grouping API over HTTP.

Endpoints:
  POST /api/layout   compute the lane/edge layout for a posted snapshot
  POST /api/flows    resolve branch labels and flow groups
  GET  /healthz      liveness and build information

The server shares the CLI's cache configuration, so a Redis or Mongo backend
from the config file applies here too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the API server and blocks until the context is canceled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Serving on %s", addr)
	printDetail("POST /api/layout · POST /api/flows · GET /healthz")

	srv := server.New(runner, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}
