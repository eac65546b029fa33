package cli

import (
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/internal/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON API over the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			printInfo("Serving on http://%s", displayAddr(addr))
			printDetail("GET /api/tickets /api/ready /api/blocked /api/graph /api/cycles /api/tree")
			return server.New(store, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7338", "listen address")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
