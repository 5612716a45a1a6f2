package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/studiofront/internal/admin"
	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/config"
	"github.com/ziadkadry99/studiofront/internal/crosstab"
	"github.com/ziadkadry99/studiofront/internal/server"
	"github.com/ziadkadry99/studiofront/internal/site"
	"github.com/ziadkadry99/studiofront/internal/storage"
	"github.com/ziadkadry99/studiofront/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the studio web server",
	Long: `Starts the HTTP server hosting the landing page, the carousel sockets and
the shared storage API. In the storage variant, writes to the card snapshot
are pushed to every open tab.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		b, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := cards.NewStore(b.source, logger.Named("cards"))
		if _, err := store.Load(ctx); err != nil {
			logger.Warn("initial card load failed, showing sample projects", zap.Error(err))
		}

		srv := server.New(server.Config{Port: cfg.Port, AllowAll: cfg.AllowAllOrigins}, logger.Named("http"))
		r := srv.Router()

		storage.RegisterRoutes(r, b.storage, logger.Named("storage"))
		viewer.New(store, carouselConfig(cfg), logger.Named("viewer")).RegisterRoutes(r)

		pages, err := site.New(store, site.Options{
			Title:     cfg.SiteTitle,
			IntroFile: cfg.IntroFile,
			Carousel:  carouselConfig(cfg),
		}, logger.Named("site"))
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		pages.RegisterRoutes(r)

		g, gctx := errgroup.WithContext(ctx)

		if cfg.Variant == config.VariantStorage {
			admin.RegisterRoutes(r, admin.NewEditor(b.storage, cfg.StorageKey))

			syncer := crosstab.New(b.hub, cfg.StorageKey, store, cfg.Carousel.Settle(), logger.Named("crosstab"))
			g.Go(func() error { return syncer.Run(gctx) })

			if cfg.SnapshotFile != "" {
				w := crosstab.NewFileWatcher(cfg.SnapshotFile, cfg.StorageKey, b.storage, logger.Named("snapshot"))
				g.Go(func() error { return w.Run(gctx) })
			}
		}

		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("studio server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
