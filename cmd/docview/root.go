package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docview-mcp/internal/config"
	"github.com/dshills/docview-mcp/internal/pipeline"
	"github.com/dshills/docview-mcp/internal/service"
	"github.com/dshills/docview-mcp/internal/store"
	"github.com/dshills/docview-mcp/internal/transform"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "docview",
		Short:        "Chunked content server for viewing and transforming large documents",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newHTTPCmd(&configPath),
		newFmtCmd(),
		newVersionCmd(),
	)
	return root
}

// buildService constructs the service stack from config. Logs go to stderr;
// stdout is reserved for the MCP protocol and command output.
func buildService(configPath string) (*service.Service, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := cfg.Logging.NewLogger(os.Stderr)
	st := store.New(logger)
	pl := pipeline.New(st, transform.Default(), logger)
	svc := service.New(st, pl, logger)
	return svc, cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docview %s (built %s)\n", version, buildTime)
		},
	}
}
