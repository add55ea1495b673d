// Package web serves the map page, its JSON API and the session websocket.
package web

import (
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/session"
	"github.com/ziadkadry99/malabomap/internal/sidebar"
)

// Options configures the handler.
type Options struct {
	Title             string
	Assets            fs.FS
	CoreAssets        []string
	EnhancementAssets []string
	MapOptions        mapview.Options
	Breakpoint        int
	// AllowAllOrigins lets pages from any origin open a session socket.
	AllowAllOrigins bool
	Logger          *zap.Logger
}

// Handler serves the page and keeps one session per open socket.
type Handler struct {
	// reloadMu orders session creation against Reload, so every session
	// either sees the new state or is closed by it.
	reloadMu sync.Mutex

	opts     Options
	state    *State
	sessions *session.Manager
	upgrader *websocket.Upgrader
	logger   *zap.Logger
}

// New creates a handler over the given startup state.
func New(state *State, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = sidebar.DefaultBreakpoint
	}
	return &Handler{
		opts:     opts,
		state:    state,
		sessions: session.NewManager(opts.MapOptions, opts.Breakpoint, opts.Logger),
		upgrader: newUpgrader(opts.AllowAllOrigins),
		logger:   opts.Logger,
	}
}

// RegisterRoutes mounts every route onto r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/map.svg", h.handleSVG)
	r.Get("/api/countries", h.handleCountries)
	r.Get("/api/countries/{code}", h.handleCountry)
	r.Get("/api/counts", h.handleCounts)
	r.Get("/api/particles", h.handleParticles)
	r.Get("/ws/map", h.handleSocket)
	if h.opts.Assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(h.opts.Assets)))
	}
}

// Reload installs a new startup outcome. Open sessions are built over the
// old dataset, so they are closed and their pages told to reload.
func (h *Handler) Reload(res *boot.Result, err error) {
	h.reloadMu.Lock()
	h.state.Set(res, err)
	h.sessions.CloseAll()
	h.reloadMu.Unlock()
	if err != nil {
		h.logger.Error("reload failed", zap.Error(err))
		return
	}
	h.logger.Info("dataset reloaded", zap.Int("countries", len(res.Dataset.Countries)))
}

// openSession creates a session over the current dataset.
func (h *Handler) openSession() (*session.Session, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	res, err := h.state.Current()
	if err != nil {
		return nil, err
	}
	return h.sessions.Create(res.Dataset), nil
}

// Close ends every open session.
func (h *Handler) Close() {
	h.sessions.CloseAll()
}

// renderer builds a fresh coordinator for stateless routes.
func (h *Handler) renderer(res *boot.Result) *mapview.Renderer {
	opts := h.opts.MapOptions
	opts.Scheduler = mapview.Immediate
	return mapview.New(res.Dataset, opts)
}
