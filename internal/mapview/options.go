package mapview

import (
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	DefaultNeutralColor  = "#cdd1d7"
	DefaultFilteredColor = "#E0E0E0"
	DefaultCountDelay    = 150 * time.Millisecond
)

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, f func())

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) { fn(d, f) }

// Immediate runs scheduled work synchronously. It is used when there is
// no live client to animate for, such as static export.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, f func()) { f() })

// Options tunes a Renderer.
type Options struct {
	// NeutralColor fills countries outside a hovered category.
	NeutralColor string
	// FilteredColor fills countries that do not match the active tags.
	FilteredColor string
	// CountDelay is how long a changed category count stays in the
	// updating state before its new value is written.
	CountDelay time.Duration
	Scheduler  Scheduler
	PanZoom    PanZoomOptions
	Markdown   goldmark.Markdown
}

// DefaultOptions returns the options the page is designed around.
func DefaultOptions() Options {
	return Options{
		NeutralColor:  DefaultNeutralColor,
		FilteredColor: DefaultFilteredColor,
		CountDelay:    DefaultCountDelay,
		Scheduler:     Immediate,
		PanZoom:       DefaultPanZoom(),
		Markdown:      NewMarkdown(),
	}
}

// NewMarkdown returns the converter used for section content. Raw HTML is
// passed through because existing datasets embed inline markup.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.NeutralColor == "" {
		o.NeutralColor = d.NeutralColor
	}
	if o.FilteredColor == "" {
		o.FilteredColor = d.FilteredColor
	}
	if o.CountDelay < 0 {
		o.CountDelay = 0
	}
	if o.Scheduler == nil {
		o.Scheduler = d.Scheduler
	}
	if o.PanZoom == (PanZoomOptions{}) {
		o.PanZoom = d.PanZoom
	}
	if o.Markdown == nil {
		o.Markdown = d.Markdown
	}
	return o
}
