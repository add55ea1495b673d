package config

// DefaultCoreAssets must load before the sidebar is wired. They ship in
// the repository's assets directory.
var DefaultCoreAssets = []string{
	"css/main.css",
	"js/map-renderer.js",
	"js/sidebar-handler.js",
}

// VendorEnhancementAssets are the particle background, tooltip positioning
// and pan/zoom bundles. They are not shipped in the assets directory: drop
// them under js/vendors/ and list them in assets.enhancement to enable them.
// The page runs without them.
var VendorEnhancementAssets = []string{
	"js/vendors/particles.min.js",
	"js/vendors/popper.min.js",
	"js/vendors/tippy-bundle.umd.min.js",
	"js/vendors/svg-pan-zoom.min.js",
}

// DefaultEnhancementAssets load after the map is built. Empty by default so
// a fresh checkout starts without the vendor bundles.
var DefaultEnhancementAssets = []string{}

// DefaultExportAssets are glob patterns, relative to AssetsDir, copied by export.
var DefaultExportAssets = []string{
	"css/**/*.css",
	"js/**/*.js",
	"img/**",
	"fonts/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:           "Malabo Convention in Africa",
		DataSource:      "assets/data/country-data.json",
		ParticlesSource: "assets/data/particlesjs-config.json",
		AssetsDir:       "assets",
		Port:            8080,
		Map: MapConfig{
			Breakpoint:    769,
			CountDelayMS:  150,
			MinZoom:       1,
			MaxZoom:       10,
			NeutralColor:  "#cdd1d7",
			FilteredColor: "#E0E0E0",
		},
		Assets: AssetConfig{
			Core:        DefaultCoreAssets,
			Enhancement: DefaultEnhancementAssets,
		},
		Export: ExportConfig{
			Dir:    "dist",
			Assets: DefaultExportAssets,
		},
	}
}
