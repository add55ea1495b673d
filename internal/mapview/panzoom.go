package mapview

// PanZoomOptions are handed to the svg-pan-zoom library in the browser.
// The server does no viewport math itself.
type PanZoomOptions struct {
	ViewportSelector          string  `json:"viewportSelector"`
	PanEnabled                bool    `json:"panEnabled"`
	ControlIconsEnabled       bool    `json:"controlIconsEnabled"`
	ZoomEnabled               bool    `json:"zoomEnabled"`
	DblClickZoomEnabled       bool    `json:"dblClickZoomEnabled"`
	MouseWheelZoomEnabled     bool    `json:"mouseWheelZoomEnabled"`
	PreventMouseEventsDefault bool    `json:"preventMouseEventsDefault"`
	ZoomScaleSensitivity      float64 `json:"zoomScaleSensitivity"`
	MinZoom                   float64 `json:"minZoom"`
	MaxZoom                   float64 `json:"maxZoom"`
	Fit                       bool    `json:"fit"`
	Center                    bool    `json:"center"`
	TouchEnabled              bool    `json:"touchEnabled"`
	PreventTouchEventsDefault bool    `json:"preventTouchEventsDefault"`
}

// DefaultPanZoom bounds zoom to 1x-10x and fits and centers the map.
// Touch and mouse events pass through so country hover and click keep working.
func DefaultPanZoom() PanZoomOptions {
	return PanZoomOptions{
		ViewportSelector:      ".map-group",
		PanEnabled:            true,
		ControlIconsEnabled:   true,
		ZoomEnabled:           true,
		MouseWheelZoomEnabled: true,
		ZoomScaleSensitivity:  0.5,
		MinZoom:               1,
		MaxZoom:               10,
		Fit:                   true,
		Center:                true,
		TouchEnabled:          true,
	}
}

// PanZoomOptions returns the options the page passes to svg-pan-zoom.
func (r *Renderer) PanZoomOptions() PanZoomOptions {
	return r.opts.PanZoom
}
