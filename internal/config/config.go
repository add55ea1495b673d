package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/malabomap/internal/mapview"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".malabomap.yml"

// EnvPrefix prefixes environment overrides. A double underscore descends
// into a nested key: MALABOMAP_MAP__BREAKPOINT sets map.breakpoint.
const EnvPrefix = "MALABOMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MALABOMAP_*).
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

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
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

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataSource == "" {
		return fmt.Errorf("data_source is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.Map.Breakpoint <= 0 {
		return fmt.Errorf("map.breakpoint must be positive")
	}

	if c.Map.CountDelayMS < 0 {
		return fmt.Errorf("map.count_delay_ms must be non-negative")
	}

	if c.Map.MinZoom < 1 {
		return fmt.Errorf("map.min_zoom must be at least 1")
	}

	if c.Map.MaxZoom < c.Map.MinZoom {
		return fmt.Errorf("map.max_zoom %.1f is below map.min_zoom %.1f", c.Map.MaxZoom, c.Map.MinZoom)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}

	return nil
}

// MapOptions converts the map section into renderer options.
func (c *Config) MapOptions() mapview.Options {
	opts := mapview.DefaultOptions()
	opts.NeutralColor = c.Map.NeutralColor
	opts.FilteredColor = c.Map.FilteredColor
	opts.CountDelay = time.Duration(c.Map.CountDelayMS) * time.Millisecond
	opts.PanZoom.MinZoom = c.Map.MinZoom
	opts.PanZoom.MaxZoom = c.Map.MaxZoom
	return opts
}
