package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (STUDIO_*). Nested keys use a double
// underscore: STUDIO_CAROUSEL__INFINITE -> carousel.infinite.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("STUDIO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "STUDIO_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validVariants = map[Variant]bool{
	VariantREST:    true,
	VariantStorage: true,
}

var validLogLevels = map[string]bool{
	"": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validVariants[c.Variant] {
		return fmt.Errorf("invalid variant %q: must be one of rest, storage", c.Variant)
	}

	if c.Variant == VariantREST {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api_base_url %q must be an absolute URL", c.APIBaseURL)
		}
	}

	if c.StorageKey == "" {
		return fmt.Errorf("storage_key is required")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if c.Carousel.CardWidthPx <= 0 {
		return fmt.Errorf("carousel.card_width_px must be positive")
	}
	if c.Carousel.GapPx < 0 {
		return fmt.Errorf("carousel.gap_px must be non-negative")
	}
	if c.Carousel.TransitionMS < 0 || c.Carousel.SettleMS < 0 {
		return fmt.Errorf("carousel timings must be non-negative")
	}

	return nil
}
