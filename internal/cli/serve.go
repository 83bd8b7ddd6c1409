package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/internal/server"
)

// serveCommand creates the serve command for the decode API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decode HTTP API",
		Long: `Serve the decode HTTP API.

Routes:
  GET  /health
  POST /v1/decode    ?format=json|yaml|msgpack  ?editor_carry=true
  POST /v1/validate

The request body is a raw layout document. Decoded layouts are cached with
the configured backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:         cfg.Addr,
				MaxBodyBytes: cfg.MaxBodyBytes,
				Format:       c.Config.Format,
				EditorCarry:  c.Config.EditorCarry,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
