package cli

import (
	"cmp"
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/internal/server"
	"github.com/matzehuels/bstviz/pkg/observability"
	"github.com/matzehuels/bstviz/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the step-by-step API under /api, Prometheus metrics under /metrics
and a liveness probe under /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	metrics := observability.NewPrometheus()
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetSessionHooks(metrics)

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	ttl := cmp.Or(c.Config.Server.SessionTTL, session.DefaultTTL)
	store := session.NewStore(
		session.WithTTL(ttl),
		session.WithMaxSessions(c.Config.Server.MaxSessions),
		session.WithLogger(logger),
	)

	srv := server.New(server.Config{
		Addr:            addr,
		Width:           c.Config.Layout.Width,
		Height:          c.Config.Layout.Height,
		Radius:          c.Config.Layout.Radius,
		CleanupInterval: max(ttl/2, time.Minute),
	}, store, runner, metrics.Handler(), logger)

	return srv.ListenAndServe(ctx)
}
