package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/config"
	"github.com/rlhub/datacat/internal/docs"
	"github.com/rlhub/datacat/internal/server"
	"github.com/rlhub/datacat/internal/site"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog site and REST API",
	Long: `Starts an HTTP server that serves the static catalog site alongside a
REST API for datasets, schemas, and example previews. With --watch, catalog
file changes trigger a rebuild and a live reload of connected browsers.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild and live-reload on catalog changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	fetcher := newFetcher(cfg)

	index, err := loadSearchIndex(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
	}

	var reload *server.ReloadHub
	if serveWatch {
		reload = server.NewReloadHub(cfg.Server.AllowAll)
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		SiteDir:  cfg.SiteDir,
		AllowAll: cfg.Server.AllowAll,
	}, store, fetcher, index, reload)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	if serveWatch {
		go func() {
			if err := reload.Watch(cfg.CatalogDir, func() error {
				return rebuild(ctx, cfg, store)
			}, ctx.Done()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: catalog watch stopped: %v\n", err)
			}
		}()
	}

	fmt.Fprintf(os.Stderr, "datacat server v%s starting on port %d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)
	fmt.Fprintf(os.Stderr, "  Site: %s\n", cfg.SiteDir)

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// rebuild reloads the catalog and regenerates docs and site after a
// watched file changes.
func rebuild(ctx context.Context, cfg *config.Config, store *catalog.Store) error {
	datasets, err := catalog.LoadDir(cfg.CatalogDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("reloading catalog: %w", err)
	}

	generator := docs.NewGenerator(cfg.DocsDir, cfg.Preview.BaseURL)
	for _, d := range datasets {
		if err := store.Upsert(ctx, d); err != nil {
			return fmt.Errorf("storing %s: %w", d.Name, err)
		}
		if _, err := generator.GenerateDataset(d); err != nil {
			return fmt.Errorf("generating pages for %s: %w", d.Name, err)
		}
	}
	stored, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}
	if err := generator.GenerateIndex(stored); err != nil {
		return fmt.Errorf("generating index: %w", err)
	}

	siteGen := site.NewGenerator(cfg.DocsDir, cfg.SiteDir, cfg.SiteName)
	if _, err := siteGen.Generate(); err != nil {
		return fmt.Errorf("regenerating site: %w", err)
	}
	return nil
}
