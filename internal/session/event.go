package session

import (
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/sidebar"
)

// Event types the page sends. Each maps to exactly one coordinator operation.
const (
	EventInit          = "init"
	EventHoverCountry  = "hover_country"
	EventLeaveCountry  = "leave_country"
	EventMeasureTip    = "measure_tooltip"
	EventClickCountry  = "click_country"
	EventClickListItem = "click_list_item"
	EventCloseModal    = "close_modal"
	EventKeyDown       = "keydown"
	EventToggleTag     = "toggle_tag"
	EventHoverCategory = "hover_category"
	EventLeaveCategory = "leave_category"
	EventToggleLeft    = "toggle_left"
	EventToggleRight   = "toggle_right"
	EventOverlayClick  = "overlay_click"
	EventViewport      = "viewport"
)

// Event is one UI event forwarded by the page.
type Event struct {
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
	Category string `json:"category,omitempty"`
	Key      string `json:"key,omitempty"`

	// Pointer and viewport geometry, in CSS pixels.
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	TipWidth  float64 `json:"tip_width,omitempty"`
	TipHeight float64 `json:"tip_height,omitempty"`

	// Elements reports which sidebar elements the page has; sent with init.
	Elements *sidebar.Elements `json:"elements,omitempty"`
}

func (e Event) pointer() mapview.Pointer {
	return mapview.Pointer{
		X:          e.X,
		Y:          e.Y,
		ViewWidth:  e.Width,
		ViewHeight: e.Height,
		TipWidth:   e.TipWidth,
		TipHeight:  e.TipHeight,
	}
}
