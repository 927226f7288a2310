package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/docview-mcp/internal/httpapi"
)

func newHTTPCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the REST API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, logger, err := buildService(*configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.HTTP.Addr
			}

			srv := httpapi.NewServer(svc, cfg.DefaultChunkSize, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx, addr); err != nil && err != context.Canceled {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
