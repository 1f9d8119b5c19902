package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoe5466/Gudiee-sub001/logging"
	"github.com/zoe5466/Gudiee-sub001/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local marketplace backend",
	Long: "Serve the marketplace API (services, accounts, orders and payments) backed by SQLite or Postgres.\n" +
		"The service catalog is reloaded whenever its YAML file changes.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides server.port)")
	serveCmd.Flags().String("driver", "", "database driver: sqlite, sqlite3 or postgres")
	serveCmd.Flags().String("dsn", "", "database DSN")
	serveCmd.Flags().String("catalog", "", "service catalog YAML (built-in catalog when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Server.Port = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.Server.Driver = v
	}
	if v, _ := cmd.Flags().GetString("dsn"); v != "" {
		cfg.Server.DSN = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Server.CatalogPath = v
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: "json", Verbose: verbose})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := server.OpenStore(ctx, cfg.Server.Driver, cfg.Server.DSN)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	catalog, err := server.LoadCatalog(cfg.Server.CatalogPath)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.ServerConfig{
		Port:    cfg.Server.Port,
		Store:   store,
		Catalog: catalog,
		Logger:  logger.Named("http"),
	})
	watcher := server.NewCatalogWatcher(catalog, logger.Named("catalog"), nil)

	fmt.Fprintf(cmd.OutOrStdout(), "Guidee marketplace API on http://localhost:%d (%s, %d services)\n",
		cfg.Server.Port, cfg.Server.Driver, len(catalog.List()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error { return watcher.Watch(gctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
