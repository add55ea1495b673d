// Package sidebar controls the two off-canvas panels: filters on the left,
// the country list on the right. It only tracks which panel is open; the
// stylesheet reacts to the resulting classes on content-wrapper.
package sidebar

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultBreakpoint is the desktop width at which both panels are forced shut.
const DefaultBreakpoint = 769

// ErrMissingElements means the page lacks an element the controller binds to.
var ErrMissingElements = errors.New("sidebar elements missing")

// Element ids the controller requires.
const (
	LeftToggleID     = "leftToggle"
	RightToggleID    = "rightToggle"
	ContentWrapperID = "content-wrapper"
	OverlayID        = "overlay"
)

// CSS classes toggled on content-wrapper.
const (
	ShowLeftClass  = "show-left-sidebar"
	ShowRightClass = "show-right-sidebar"
)

// Elements records which required elements the page provides.
type Elements struct {
	LeftToggle     bool `json:"leftToggle"`
	RightToggle    bool `json:"rightToggle"`
	ContentWrapper bool `json:"contentWrapper"`
	Overlay        bool `json:"overlay"`
}

// AllElements is the set the standard page layout provides.
var AllElements = Elements{LeftToggle: true, RightToggle: true, ContentWrapper: true, Overlay: true}

func (e Elements) missing() []string {
	var ids []string
	if !e.LeftToggle {
		ids = append(ids, LeftToggleID)
	}
	if !e.RightToggle {
		ids = append(ids, RightToggleID)
	}
	if !e.ContentWrapper {
		ids = append(ids, ContentWrapperID)
	}
	if !e.Overlay {
		ids = append(ids, OverlayID)
	}
	return ids
}

// State is which panel is open.
type State struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Classes returns the content-wrapper classes for s.
func (s State) Classes() string {
	var classes []string
	if s.Left {
		classes = append(classes, ShowLeftClass)
	}
	if s.Right {
		classes = append(classes, ShowRightClass)
	}
	return strings.Join(classes, " ")
}

// Controller toggles the panels. A disabled controller ignores every call.
type Controller struct {
	state      State
	breakpoint int
	width      int
	seenWidth  bool
	disabled   bool
}

// New binds a controller to the page. If an element is missing the error
// is logged and a disabled controller is returned alongside it, leaving
// the rest of the page functional.
func New(el Elements, breakpoint int, logger *zap.Logger) (*Controller, error) {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{breakpoint: breakpoint}
	if missing := el.missing(); len(missing) > 0 {
		c.disabled = true
		err := fmt.Errorf("%w: %s", ErrMissingElements, strings.Join(missing, ", "))
		logger.Warn("sidebar disabled", zap.Error(err))
		return c, err
	}
	return c, nil
}

// Enabled reports whether the controller is bound.
func (c *Controller) Enabled() bool { return !c.disabled }

// ToggleLeft flips the left panel and always closes the right one.
func (c *Controller) ToggleLeft() {
	if c.disabled {
		return
	}
	c.state.Left = !c.state.Left
	c.state.Right = false
}

// ToggleRight flips the right panel and always closes the left one.
func (c *Controller) ToggleRight() {
	if c.disabled {
		return
	}
	c.state.Right = !c.state.Right
	c.state.Left = false
}

// OverlayClick closes both panels.
func (c *Controller) OverlayClick() {
	if c.disabled {
		return
	}
	c.closeAll()
}

// Viewport records the viewport width. Crossing from below the breakpoint
// to at or above it closes both panels, the same edge a min-width media
// query reports as a change to matching. The first report only records
// the width.
func (c *Controller) Viewport(width int) {
	if c.disabled {
		return
	}
	prev, seen := c.width, c.seenWidth
	c.width, c.seenWidth = width, true
	if seen && prev < c.breakpoint && width >= c.breakpoint {
		c.closeAll()
	}
}

func (c *Controller) closeAll() {
	c.state = State{}
}

// State returns which panel is open.
func (c *Controller) State() State { return c.state }
