package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Map.Breakpoint != 769 {
		t.Errorf("expected default breakpoint 769, got %d", cfg.Map.Breakpoint)
	}
	if cfg.Map.CountDelayMS != 150 {
		t.Errorf("expected default count delay 150ms, got %d", cfg.Map.CountDelayMS)
	}
	if cfg.Map.MinZoom != 1 || cfg.Map.MaxZoom != 10 {
		t.Errorf("expected zoom bounds 1-10, got %v-%v", cfg.Map.MinZoom, cfg.Map.MaxZoom)
	}
	if len(cfg.Assets.Core) != 3 {
		t.Errorf("expected 3 core assets, got %d", len(cfg.Assets.Core))
	}
}

func TestDefaultAssetsShipWithRepo(t *testing.T) {
	cfg := DefaultConfig()
	root := filepath.Join("..", "..")
	paths := []string{cfg.DataSource, cfg.ParticlesSource}
	for _, asset := range append(append([]string{}, cfg.Assets.Core...), cfg.Assets.Enhancement...) {
		paths = append(paths, filepath.Join(cfg.AssetsDir, asset))
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Errorf("default asset %s is not in the repository: %v", p, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.malabomap.yml")

	original := DefaultConfig()
	original.DataSource = "https://example.org/country-data.json"
	original.Port = 9090
	original.Watch = true
	original.Map.Breakpoint = 1024
	original.Assets.Enhancement = []string{"js/vendors/svg-pan-zoom.min.js"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.DataSource != original.DataSource {
		t.Errorf("data_source: got %q, want %q", loaded.DataSource, original.DataSource)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if !loaded.Watch {
		t.Error("watch: got false, want true")
	}
	if loaded.Map.Breakpoint != 1024 {
		t.Errorf("map.breakpoint: got %d, want 1024", loaded.Map.Breakpoint)
	}
	if len(loaded.Assets.Enhancement) != 1 || loaded.Assets.Enhancement[0] != "js/vendors/svg-pan-zoom.min.js" {
		t.Errorf("assets.enhancement: got %v", loaded.Assets.Enhancement)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.DataSource != DefaultConfig().DataSource {
		t.Errorf("expected default data_source, got %q", cfg.DataSource)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("port: 3000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("port: got %d, want 3000", cfg.Port)
	}
	if cfg.Map.Breakpoint != 769 {
		t.Errorf("breakpoint default lost: got %d", cfg.Map.Breakpoint)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("MALABOMAP_DATA_SOURCE", "/srv/data.json")
	t.Setenv("MALABOMAP_MAP__NEUTRAL_COLOR", "#000000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataSource != "/srv/data.json" {
		t.Errorf("env override failed: got %q", loaded.DataSource)
	}
	if loaded.Map.NeutralColor != "#000000" {
		t.Errorf("nested env override failed: got %q", loaded.Map.NeutralColor)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("port: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data source", func(c *Config) { c.DataSource = "" }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"zero breakpoint", func(c *Config) { c.Map.Breakpoint = 0 }},
		{"negative count delay", func(c *Config) { c.Map.CountDelayMS = -1 }},
		{"min zoom below one", func(c *Config) { c.Map.MinZoom = 0.5 }},
		{"max below min", func(c *Config) { c.Map.MaxZoom = 0.9; c.Map.MinZoom = 1 }},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMapOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Map.CountDelayMS = 300
	cfg.Map.MaxZoom = 6

	opts := cfg.MapOptions()
	if opts.CountDelay != 300*time.Millisecond {
		t.Errorf("count delay: got %v", opts.CountDelay)
	}
	if opts.PanZoom.MaxZoom != 6 {
		t.Errorf("max zoom: got %v", opts.PanZoom.MaxZoom)
	}
	if opts.NeutralColor != "#cdd1d7" {
		t.Errorf("neutral color: got %q", opts.NeutralColor)
	}
}

func TestValidateSource(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "data.json")
	if err := os.WriteFile(existing, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://example.org/data.json", false},
		{"http://localhost:8080/data.json", false},
		{existing, false},
		{filepath.Join(dir, "missing.json"), true},
		{"", true},
	}
	for _, tt := range tests {
		err := validateSource(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateSource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, ok := range []string{"1", "8080", "65535"} {
		if err := validatePort(ok); err != nil {
			t.Errorf("validatePort(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"0", "65536", "http", ""} {
		if err := validatePort(bad); err == nil {
			t.Errorf("validatePort(%q) should fail", bad)
		}
	}
}
