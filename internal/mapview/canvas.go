// Package mapview holds the interactive map state for one viewer: the
// country shapes, the filter panel, the country list, the tooltip and the
// modal. Every UI event maps to one exported operation on Renderer, so the
// whole interaction model can be driven without a browser.
package mapview

import (
	"errors"
	"fmt"
	"html/template"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

var (
	ErrUnknownCountry  = errors.New("unknown country")
	ErrUnknownTag      = errors.New("unknown tag")
	ErrUnknownCategory = errors.New("unknown category")
)

// Shape is one rendered country path.
type Shape struct {
	Code     string
	Category atlas.Category
	Tags     []string
	D        string
	Title    string
	Fill     string
	Active   bool
}

// ListItem is one entry of the alphabetical country list.
type ListItem struct {
	Code   string
	Name   string
	Color  string
	Active bool
}

// CategoryOption is a hover-only category entry in the filter panel.
type CategoryOption struct {
	ID    atlas.Category
	Label string
	Color string
	Count int
	// Pending is the value Count will take once the updating state ends.
	Pending  int
	Updating bool
}

// TagOption is a checkbox entry in the filter panel.
type TagOption struct {
	ID      string
	Label   string
	Count   int
	Checked bool
}

// Tooltip is the single floating hover element.
type Tooltip struct {
	Visible bool
	Left    float64
	Top     float64
	Content template.HTML
}

// Modal is the single country detail overlay.
type Modal struct {
	Active bool
	Code   string
	Title  string
	Body   template.HTML
}

// ActiveFilters is the session-scoped filter selection. Categories is kept
// for parity with the panel layout but never narrows the map; category
// options only highlight on hover.
type ActiveFilters struct {
	Categories map[atlas.Category]struct{}
	Tags       atlas.TagSet
}

// Renderer coordinates the map, filter panel, country list, tooltip and
// modal for one viewer. It is not safe for concurrent use; callers
// serialise access.
type Renderer struct {
	ds   *atlas.Dataset
	opts Options

	shapes     []*Shape
	shapeIndex map[string]*Shape
	items      []*ListItem
	itemIndex  map[string]*ListItem
	categories []*CategoryOption
	tags       []*TagOption

	tooltip Tooltip
	pointer Pointer
	modal   Modal

	filters  ActiveFilters
	selected string
	frames   []func()
}

// New builds every element once. Later interactions only mutate them.
func New(ds *atlas.Dataset, opts Options) *Renderer {
	r := &Renderer{
		ds:         ds,
		opts:       opts.withDefaults(),
		shapeIndex: make(map[string]*Shape, len(ds.Countries)),
		itemIndex:  make(map[string]*ListItem, len(ds.Countries)),
		filters: ActiveFilters{
			Categories: map[atlas.Category]struct{}{},
			Tags:       atlas.NewTagSet(),
		},
	}
	r.buildShapes()
	r.buildCountryList()
	r.buildFilters()
	return r
}

func (r *Renderer) buildShapes() {
	for _, code := range r.ds.Codes() {
		c := r.ds.Countries[code]
		cat := atlas.DetermineCategory(c)
		s := &Shape{
			Code:     code,
			Category: cat,
			Tags:     c.Tags,
			D:        c.Paths,
			Title:    c.Name,
			Fill:     r.ds.CategoryColor(cat),
		}
		r.shapes = append(r.shapes, s)
		r.shapeIndex[code] = s
	}
}

// Dataset returns the dataset the renderer was built from.
func (r *Renderer) Dataset() *atlas.Dataset { return r.ds }

// Shape returns the rendered shape for code.
func (r *Renderer) Shape(code string) (Shape, bool) {
	s, ok := r.shapeIndex[code]
	if !ok {
		return Shape{}, false
	}
	return *s, true
}

// HoverCountry marks the shape active and shows its tooltip near p.
func (r *Renderer) HoverCountry(code string, p Pointer) error {
	s, ok := r.shapeIndex[code]
	if !ok {
		return fmt.Errorf("hover %q: %w", code, ErrUnknownCountry)
	}
	s.Active = true
	r.showTooltip(r.tooltipContent(code), p)
	return nil
}

// LeaveCountry clears the hover state of the shape and hides the tooltip.
func (r *Renderer) LeaveCountry(code string) error {
	s, ok := r.shapeIndex[code]
	if !ok {
		return fmt.Errorf("leave %q: %w", code, ErrUnknownCountry)
	}
	s.Active = false
	r.hideTooltip()
	return nil
}

// ClickCountry selects the country behind a map shape.
func (r *Renderer) ClickCountry(code string) error {
	return r.SelectCountry(code)
}

func (r *Renderer) clearActiveShapes() {
	for _, s := range r.shapes {
		s.Active = false
	}
}

// nextFrame defers f until the next Flush, the equivalent of the next
// paint frame in the browser.
func (r *Renderer) nextFrame(f func()) {
	r.frames = append(r.frames, f)
}

// Flush runs the work deferred to the next frame and reports whether
// there was any.
func (r *Renderer) Flush() bool {
	if len(r.frames) == 0 {
		return false
	}
	frames := r.frames
	r.frames = nil
	for _, f := range frames {
		f()
	}
	return true
}
