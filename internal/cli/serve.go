package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/lexis/internal/server"
)

func (c *CLI) newServeCommand() *cobra.Command {
	var addr string
	var dir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Example: `  lexis serve
  lexis serve --addr :9000 --dir ./documents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			src, closeSource, err := c.openSource(dir)
			if err != nil {
				return err
			}
			defer closeSource()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(src, nil, c.analyzerOptions()...).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Read categories from subdirectories of this directory")
	return cmd
}
