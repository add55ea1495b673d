// Package export writes the map as a static site: the page, the standalone
// SVG, one modal fragment per country, the particles config and the assets
// matched by the export globs. The exported page needs no server.
package export

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/progress"
	"github.com/ziadkadry99/malabomap/internal/web"
)

// Layout of the exported site.
const (
	IndexFile     = "index.html"
	SVGFile       = "map.svg"
	FragmentDir   = "countries"
	AssetDir      = "assets"
	ParticlesFile = "data/particles.json"
)

// Options configures an export run.
type Options struct {
	Dir               string
	Title             string
	Assets            fs.FS
	AssetGlobs        []string
	CoreAssets        []string
	EnhancementAssets []string
	MapOptions        mapview.Options
	Breakpoint        int
	Reporter          progress.Reporter
	Logger            *zap.Logger
}

// Summary counts what an export wrote.
type Summary struct {
	Countries int
	Assets    int
	Files     []string
}

// Run writes the site for res into opts.Dir.
func Run(res *boot.Result, opts Options) (*Summary, error) {
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	assets, err := MatchAssets(opts.Assets, opts.AssetGlobs)
	if err != nil {
		return nil, err
	}

	mopts := opts.MapOptions
	mopts.Scheduler = mapview.Immediate
	r := mapview.New(res.Dataset, mopts)
	codes := res.Dataset.Codes()

	total := 2 + len(codes) + len(assets)
	if res.Particles != nil {
		total++
	}
	sum := &Summary{Countries: len(codes), Assets: len(assets)}
	w := &writer{dir: opts.Dir, reporter: opts.Reporter, sum: sum}
	opts.Reporter.Start(total)
	defer opts.Reporter.Finish()

	page, err := renderIndex(r, res, opts)
	if err != nil {
		return nil, err
	}
	if err := w.write(IndexFile, page); err != nil {
		return nil, err
	}

	var svg bytes.Buffer
	if err := r.RenderSVG(&svg); err != nil {
		return nil, err
	}
	if err := w.write(SVGFile, svg.Bytes()); err != nil {
		return nil, err
	}

	for _, code := range codes {
		body, err := r.ModalBody(code)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", code, err)
		}
		if err := w.write(path.Join(FragmentDir, code+".html"), []byte(body)); err != nil {
			return nil, err
		}
	}

	if res.Particles != nil {
		if err := w.write(ParticlesFile, res.Particles); err != nil {
			return nil, err
		}
	}

	for _, name := range assets {
		data, err := fs.ReadFile(opts.Assets, name)
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", name, err)
		}
		if err := w.write(path.Join(AssetDir, name), data); err != nil {
			return nil, err
		}
	}

	opts.Logger.Info("export complete",
		zap.String("dir", opts.Dir),
		zap.Int("countries", sum.Countries),
		zap.Int("assets", sum.Assets))
	return sum, nil
}

func renderIndex(r *mapview.Renderer, res *boot.Result, opts Options) ([]byte, error) {
	data, err := web.NewPageData(opts.Title, r, opts.CoreAssets, opts.EnhancementAssets, opts.Breakpoint, false)
	if err != nil {
		return nil, err
	}
	data.AssetBase = AssetDir + "/"
	data.Config.Socket = ""
	data.Config.Fragments = FragmentDir + "/"
	palette := r.Palette()
	data.Config.Palette = &palette
	if res.Particles != nil {
		data.Config.Particles = ParticlesFile
	}

	var buf bytes.Buffer
	if err := web.RenderPage(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

// MatchAssets returns the regular files in fsys matching any of the
// doublestar patterns, sorted and without duplicates.
func MatchAssets(fsys fs.FS, patterns []string) ([]string, error) {
	if fsys == nil || len(patterns) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			info, err := fs.Stat(fsys, m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

type writer struct {
	dir      string
	reporter progress.Reporter
	sum      *Summary
}

func (w *writer) write(name string, data []byte) error {
	dest := filepath.Join(w.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	w.sum.Files = append(w.sum.Files, name)
	w.reporter.Update(len(w.sum.Files), name)
	return nil
}
