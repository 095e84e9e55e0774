package cli

import (
	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/internal/server"
)

// newServeCmd creates the serve command, exposing buoy data over HTTP.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve buoy data over a JSON API",
		Long: `Serve station and observation data over HTTP. Requests are proxied
through the response cache, so repeated lookups don't hammer the NDBC site.

Endpoints:
  GET /healthz
  GET /stations
  GET /stations/{id}
  GET /stations/{id}/report
  GET /search?lat=32.868N&lon=117.267W&dist=250`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			client := newClient(ctx, configFromContext(ctx))

			logger.Infof("Listening on %s", addr)
			return server.New(client, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
