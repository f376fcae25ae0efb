package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coordviz/parcoords/internal/server"
)

// serveCommand creates the serve command running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive chart page",
		Long: `Serve the interactive parallel-coordinates page and its JSON API.

The page shows one button per configured dataset and redraws the chart on
selection and on window resize (debounced). Charts are rendered server-side
and cached; set server.redis_url in the configuration to share the cache
across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, cfg, loggerFromContext(cmd.Context()))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides configuration)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
