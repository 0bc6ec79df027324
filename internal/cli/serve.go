package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/observability"
	"github.com/matzehuels/lifeline/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Endpoints:
  POST /v1/layout   lay out a diagram, returns JSON
  POST /v1/render   render a diagram (?format=svg|dot|png|pdf|json)
  GET  /healthz     build info
  GET  /metrics     Prometheus metrics

Layout and render settings start from the config file and can be overridden
per request with query parameters. The server stops gracefully on SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if noMetrics {
				cfg.Server.Metrics = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.cfg = cfg
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	opts := []server.Option{
		server.WithLogger(c.Logger),
		server.WithDefaults(c.cfg.PipelineOptions()),
	}
	if c.cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hooks := observability.NewPromHooks(reg)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(reg))
	}

	printInfo("Serving %s", appName)
	printKeyValue("Address", c.cfg.Server.Addr)
	printKeyValue("Cache", c.cfg.Cache.CacheTarget())
	if c.cfg.Server.Metrics {
		printKeyValue("Metrics", "/metrics")
	}

	return server.New(runner, c.cfg.Server, opts...).ListenAndServe(ctx)
}
