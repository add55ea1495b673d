package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"
	"path"

	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/mapview"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	pageTmpl  = template.Must(template.ParseFS(templateFS, "templates/page.html"))
	errorTmpl = template.Must(template.ParseFS(templateFS, "templates/error.html"))
)

// ClientConfig is handed to the page script as JSON. An empty Socket puts
// the script in static mode.
type ClientConfig struct {
	Socket     string                 `json:"socket,omitempty"`
	Breakpoint int                    `json:"breakpoint"`
	PanZoom    mapview.PanZoomOptions `json:"panZoom"`
	Particles  string                 `json:"particles,omitempty"`
	// Fragments is where a static page loads modal bodies from.
	Fragments string `json:"fragments,omitempty"`
	// Palette lets a static page filter, recolor and label the map itself.
	Palette *mapview.Palette `json:"palette,omitempty"`
}

// PageData is everything the page template renders.
type PageData struct {
	Title       string
	SVG         template.HTML
	Categories  []mapview.CategoryOption
	Tags        []mapview.TagOption
	Items       []mapview.ListItem
	Stylesheets []string
	Scripts     []string
	Config      ClientConfig
	// AssetBase prefixes every stylesheet and script path.
	AssetBase string
}

// NewPageData lays out the initial page for r. Stylesheets and scripts are
// split out of the core and enhancement bundles, core first.
func NewPageData(title string, r *mapview.Renderer, core, enhancement []string, breakpoint int, hasParticles bool) (*PageData, error) {
	svg, err := r.SVG()
	if err != nil {
		return nil, err
	}
	snap := r.Snapshot()
	data := &PageData{
		Title:      title,
		SVG:        svg,
		Categories: snap.Categories,
		Tags:       snap.Tags,
		Items:      snap.Items,
		AssetBase:  "/assets/",
		Config: ClientConfig{
			Socket:     "/ws/map",
			Breakpoint: breakpoint,
			PanZoom:    r.PanZoomOptions(),
		},
	}
	if hasParticles {
		data.Config.Particles = "/api/particles"
	}
	for _, list := range [][]string{core, enhancement} {
		for _, asset := range list {
			switch path.Ext(asset) {
			case ".css":
				data.Stylesheets = append(data.Stylesheets, asset)
			case ".js":
				data.Scripts = append(data.Scripts, asset)
			}
		}
	}
	return data, nil
}

// RenderPage writes the page for data.
func RenderPage(w io.Writer, data *PageData) error {
	return pageTmpl.Execute(w, data)
}

// RenderError writes the generic startup failure page.
func RenderError(w io.Writer, title string) error {
	return errorTmpl.Execute(w, map[string]string{
		"Title":   title,
		"Heading": boot.ErrorTitle,
		"Hint":    boot.ErrorHint,
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	res, err := h.state.Current()
	if err != nil {
		h.serveError(w)
		return
	}

	data, err := NewPageData(h.opts.Title, h.renderer(res), h.opts.CoreAssets, h.opts.EnhancementAssets, h.opts.Breakpoint, res.Particles != nil)
	if err != nil {
		h.logger.Error("building page", zap.Error(err))
		h.serveError(w)
		return
	}
	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		h.logger.Error("rendering page", zap.Error(err))
		h.serveError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) serveError(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := RenderError(&buf, h.opts.Title); err != nil {
		http.Error(w, boot.ErrorTitle, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write(buf.Bytes())
}

func (h *Handler) handleSVG(w http.ResponseWriter, r *http.Request) {
	res, err := h.state.Current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, boot.ErrorTitle)
		return
	}
	var buf bytes.Buffer
	if err := h.renderer(res).RenderSVG(&buf); err != nil {
		h.logger.Error("rendering svg", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "rendering map failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}
