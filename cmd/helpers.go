package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/carousel"
	"github.com/ziadkadry99/studiofront/internal/config"
	"github.com/ziadkadry99/studiofront/internal/db"
	"github.com/ziadkadry99/studiofront/internal/storage"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// backend bundles the shared storage and the card source the config selects.
type backend struct {
	db      *db.DB
	hub     *storage.Hub
	storage *storage.Store
	source  cards.Source
}

func (b *backend) Close() error { return b.db.Close() }

// openBackend opens shared storage and picks the card source. Storage is
// opened for both variants because the storage API is always served.
func openBackend(cfg *config.Config) (*backend, error) {
	dbPath := filepath.Join(cfg.DataDir, "studio.db")
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	hub := storage.NewHub(logger.Named("storage"))
	st := storage.NewStore(database, hub)

	var source cards.Source
	switch cfg.Variant {
	case config.VariantREST:
		source = cards.NewRESTSource(cfg.APIBaseURL, nil)
	default:
		source = cards.NewSnapshotSource(st, cfg.StorageKey)
	}

	return &backend{db: database, hub: hub, storage: st, source: source}, nil
}

// carouselConfig maps the config file onto carousel settings.
func carouselConfig(cfg *config.Config) carousel.Config {
	return carousel.Config{
		Geometry: carousel.Geometry{
			CardWidthPx: cfg.Carousel.CardWidthPx,
			GapPx:       cfg.Carousel.GapPx,
		},
		Infinite:   cfg.Carousel.Infinite,
		Transition: cfg.Carousel.Transition(),
	}
}
