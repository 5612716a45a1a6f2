package config

import "time"

// Variant selects where the carousel cards come from.
type Variant string

const (
	// VariantREST loads cards from the backend's /api/projects endpoint.
	VariantREST Variant = "rest"
	// VariantStorage loads cards from a snapshot in shared storage and keeps
	// open tabs in sync when it changes.
	VariantStorage Variant = "storage"
)

// Config is the top-level studio configuration, corresponding to .studio.yml.
type Config struct {
	Variant         Variant        `yaml:"variant" koanf:"variant"`
	APIBaseURL      string         `yaml:"api_base_url" koanf:"api_base_url"`
	StorageKey      string         `yaml:"storage_key" koanf:"storage_key"`
	SnapshotFile    string         `yaml:"snapshot_file" koanf:"snapshot_file"`
	DataDir         string         `yaml:"data_dir" koanf:"data_dir"`
	Port            int            `yaml:"port" koanf:"port"`
	AllowAllOrigins bool           `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string         `yaml:"log_level" koanf:"log_level"`
	SiteTitle       string         `yaml:"site_title" koanf:"site_title"`
	IntroFile       string         `yaml:"intro_file" koanf:"intro_file"`
	Carousel        CarouselConfig `yaml:"carousel" koanf:"carousel"`
}

// CarouselConfig holds the carousel geometry and timing.
type CarouselConfig struct {
	CardWidthPx  float64 `yaml:"card_width_px" koanf:"card_width_px"`
	GapPx        float64 `yaml:"gap_px" koanf:"gap_px"`
	Infinite     bool    `yaml:"infinite" koanf:"infinite"`
	TransitionMS int     `yaml:"transition_ms" koanf:"transition_ms"`
	SettleMS     int     `yaml:"settle_ms" koanf:"settle_ms"`
}

// Transition is the slide animation length.
func (c CarouselConfig) Transition() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// Settle is the delay between a cross-tab signal and the reload.
func (c CarouselConfig) Settle() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// DefaultStorageKey is the shared-storage key holding the card snapshot.
const DefaultStorageKey = "studio.projects"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Variant:    VariantStorage,
		APIBaseURL: "http://localhost:3000",
		StorageKey: DefaultStorageKey,
		DataDir:    ".studio",
		Port:       8080,
		LogLevel:   "info",
		SiteTitle:  "Studio",
		Carousel: CarouselConfig{
			CardWidthPx:  310,
			GapPx:        10,
			Infinite:     true,
			TransitionMS: 500,
			SettleMS:     100,
		},
	}
}
