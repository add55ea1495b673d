package config

// Config is the top-level malabomap configuration, corresponding to .malabomap.yml.
type Config struct {
	Title           string       `yaml:"title" koanf:"title"`
	DataSource      string       `yaml:"data_source" koanf:"data_source"`
	ParticlesSource string       `yaml:"particles_source" koanf:"particles_source"`
	AssetsDir       string       `yaml:"assets_dir" koanf:"assets_dir"`
	Port            int          `yaml:"port" koanf:"port"`
	AllowAllOrigins bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool         `yaml:"watch" koanf:"watch"`
	Map             MapConfig    `yaml:"map" koanf:"map"`
	Assets          AssetConfig  `yaml:"assets" koanf:"assets"`
	Export          ExportConfig `yaml:"export" koanf:"export"`
}

// MapConfig tunes the interactive map.
type MapConfig struct {
	Breakpoint    int     `yaml:"breakpoint" koanf:"breakpoint"`
	CountDelayMS  int     `yaml:"count_delay_ms" koanf:"count_delay_ms"`
	MinZoom       float64 `yaml:"min_zoom" koanf:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom" koanf:"max_zoom"`
	NeutralColor  string  `yaml:"neutral_color" koanf:"neutral_color"`
	FilteredColor string  `yaml:"filtered_color" koanf:"filtered_color"`
}

// AssetConfig lists the script bundles, relative to AssetsDir, that must
// load before the page is usable.
type AssetConfig struct {
	Core        []string `yaml:"core" koanf:"core"`
	Enhancement []string `yaml:"enhancement" koanf:"enhancement"`
}

// ExportConfig controls `malabomap export`.
type ExportConfig struct {
	Dir    string   `yaml:"dir" koanf:"dir"`
	Assets []string `yaml:"assets" koanf:"assets"`
}
