package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/buildinfo"
	"github.com/scaduxx/folio/pkg/cms"
	"github.com/scaduxx/folio/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Long: `Serve the portfolio site described by folio.toml.

Projects come from the [cms] driver (sanity, file or mongo). A file source
with watch = true reloads on every save. The server stops gracefully on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	qc, err := newQueryCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer qc.Close()

	src, err := cms.Open(ctx, cfg, qc, c.Logger)
	if err != nil {
		return err
	}
	defer src.Close()

	srv, err := server.New(cfg, src, qc, c.Logger)
	if err != nil {
		return err
	}

	c.Logger.Debug("starting server", "version", buildinfo.Version, "source", src.Name(), "cache", cfg.Cache.Driver)
	return srv.Run(ctx)
}
