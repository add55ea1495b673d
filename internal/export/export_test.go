package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/malabomap/internal/atlas/atlastest"
	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/web"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"css/main.css":                    {Data: []byte("body{}")},
		"js/map-renderer.js":              {Data: []byte("// map")},
		"js/sidebar-handler.js":           {Data: []byte("// sidebar")},
		"js/vendors/svg-pan-zoom.min.js":  {Data: []byte("// vendor")},
		"img/logo.png":                    {Data: []byte{0x89, 'P', 'N', 'G'}},
		"data/country-data.json":          {Data: []byte("{}")},
		"fonts/.keep":                     {Data: nil},
		"notes/readme.txt":                {Data: []byte("skip me")},
		"js/vendors/particles/config.txt": {Data: []byte("skip me too")},
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

// pageConfig extracts the script config embedded in an exported page.
func pageConfig(t *testing.T, index string) web.ClientConfig {
	t.Helper()
	const open = `id="malabomap-config">`
	start := strings.Index(index, open)
	require.NotEqual(t, -1, start, "page config missing")
	rest := index[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.NotEqual(t, -1, end)

	var cfg web.ClientConfig
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &cfg))
	return cfg
}

func TestRunPageFiltersLocally(t *testing.T) {
	dir := t.TempDir()
	opts := mapview.DefaultOptions()
	_, err := Run(&boot.Result{Dataset: atlastest.Africa()}, Options{
		Dir:        dir,
		Title:      "Filters",
		MapOptions: opts,
	})
	require.NoError(t, err)

	index := readFile(t, dir, IndexFile)
	// The exported page keeps the whole filter panel.
	assert.Contains(t, index, `id="tag-CYBER"`)
	assert.Contains(t, index, `class="filter-option category-filter" data-category="SIGNED"`)
	assert.Contains(t, index, `data-tags="DATA,CYBER"`)

	cfg := pageConfig(t, index)
	assert.Empty(t, cfg.Socket)
	require.NotNil(t, cfg.Palette, "static page needs the palette to filter without a server")
	assert.Equal(t, mapview.CategoryStyle{Label: "Ratified", Color: "#2e7d32"}, cfg.Palette.Categories[atlas.CategoryRatified])
	assert.Len(t, cfg.Palette.Categories, 3)
	assert.Equal(t, "Cybersecurity strategy", cfg.Palette.Tags["CYBER"])
	assert.Equal(t, opts.NeutralColor, cfg.Palette.NeutralColor)
	assert.Equal(t, opts.FilteredColor, cfg.Palette.FilteredColor)
	assert.Equal(t, opts.CountDelay.Milliseconds(), cfg.Palette.CountDelayMS)
}

func TestRunWritesSite(t *testing.T) {
	dir := t.TempDir()
	res := &boot.Result{
		Dataset:   atlastest.KenyaChad(),
		Particles: json.RawMessage(`{"particles":{}}`),
	}

	sum, err := Run(res, Options{
		Dir:               dir,
		Title:             "Export Test",
		Assets:            testAssets(),
		AssetGlobs:        []string{"css/**/*.css", "js/**/*.js", "img/**"},
		CoreAssets:        []string{"css/main.css", "js/map-renderer.js", "js/sidebar-handler.js"},
		EnhancementAssets: []string{"js/vendors/svg-pan-zoom.min.js"},
		MapOptions:        mapview.DefaultOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Countries)
	assert.Equal(t, 5, sum.Assets)

	index := readFile(t, dir, IndexFile)
	assert.Contains(t, index, `href="assets/css/main.css"`)
	assert.Contains(t, index, `src="assets/js/map-renderer.js"`)
	assert.Contains(t, index, `"fragments":"countries/"`)
	assert.Contains(t, index, `"particles":"data/particles.json"`)
	assert.NotContains(t, index, `"socket"`)
	assert.Contains(t, index, `data-country-code="TD"`)

	assert.True(t, strings.HasPrefix(readFile(t, dir, SVGFile), "<svg"))

	ke := readFile(t, dir, "countries/KE.html")
	assert.Contains(t, ke, "National Cybersecurity Strategy")
	assert.Contains(t, ke, `href="https://example.org/ke"`)
	assert.NotContains(t, ke, "Empty")

	assert.Equal(t, `{"particles":{}}`, readFile(t, dir, ParticlesFile))
	assert.Equal(t, "// vendor", readFile(t, dir, "assets/js/vendors/svg-pan-zoom.min.js"))

	_, err = os.Stat(filepath.Join(dir, "assets", "notes", "readme.txt"))
	assert.True(t, os.IsNotExist(err), "unmatched assets must not be copied")
}

func TestRunWithoutParticles(t *testing.T) {
	dir := t.TempDir()
	sum, err := Run(&boot.Result{Dataset: atlastest.KenyaChad()}, Options{
		Dir:        dir,
		MapOptions: mapview.DefaultOptions(),
	})
	require.NoError(t, err)
	assert.NotContains(t, sum.Files, ParticlesFile)
	assert.NotContains(t, readFile(t, dir, IndexFile), `"particles"`)
}

func TestMatchAssets(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"css only", []string{"css/**/*.css"}, []string{"css/main.css"}},
		{"nested js", []string{"js/**/*.js"}, []string{"js/map-renderer.js", "js/sidebar-handler.js", "js/vendors/svg-pan-zoom.min.js"}},
		{"directories skipped", []string{"img/**"}, []string{"img/logo.png"}},
		{"duplicates merged", []string{"css/*.css", "css/**"}, []string{"css/main.css"}},
		{"no patterns", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchAssets(testAssets(), tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := MatchAssets(testAssets(), []string{"css/[.css"})
	assert.Error(t, err)
}
