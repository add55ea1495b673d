// Package session keeps one map coordinator per connected viewer. Events
// from the page are applied in arrival order and every resulting change is
// published as a batch of patch ops on the session's update channel.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/sidebar"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrClosed       = errors.New("session closed")
	ErrUnknownEvent = errors.New("unknown event type")
)

// updateBuffer is how many batches may queue before Dispatch blocks.
const updateBuffer = 64

// SidebarState is the payload of a sidebar op.
type SidebarState struct {
	Left    bool   `json:"left"`
	Right   bool   `json:"right"`
	Classes string `json:"classes"`
	Enabled bool   `json:"enabled"`
}

// Session is one viewer's map, filter panel, list, modal and sidebar.
type Session struct {
	ID        string
	CreatedAt time.Time

	logger     *zap.Logger
	breakpoint int

	mu       sync.Mutex
	renderer *mapview.Renderer
	sidebar  *sidebar.Controller
	last     mapview.Snapshot
	lastSide SidebarState
	timers   map[*time.Timer]struct{}
	closed   bool

	updates   chan []mapview.Op
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id string, ds *atlas.Dataset, opts mapview.Options, breakpoint int, logger *zap.Logger) *Session {
	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		logger:     logger.With(zap.String("session", id)),
		breakpoint: breakpoint,
		timers:     make(map[*time.Timer]struct{}),
		updates:    make(chan []mapview.Op, updateBuffer),
		done:       make(chan struct{}),
	}
	opts.Scheduler = mapview.SchedulerFunc(s.afterFunc)
	s.renderer = mapview.New(ds, opts)
	s.last = s.renderer.Snapshot()
	return s
}

// Updates delivers patch batches in the order the changes happened.
func (s *Session) Updates() <-chan []mapview.Op { return s.updates }

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// Dispatch applies one event. The resulting ops are published on Updates;
// work deferred to the next frame follows as a second batch.
func (s *Session) Dispatch(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.apply(ev); err != nil {
		return err
	}
	s.publishLocked()
	if s.renderer.Flush() {
		s.publishLocked()
	}
	return nil
}

func (s *Session) apply(ev Event) error {
	r := s.renderer
	switch ev.Type {
	case EventInit:
		el := sidebar.AllElements
		if ev.Elements != nil {
			el = *ev.Elements
		}
		// A missing element only disables the sidebar; New has logged it.
		s.sidebar, _ = sidebar.New(el, s.breakpoint, s.logger)
		if ev.Width > 0 {
			s.sidebar.Viewport(int(ev.Width))
		}
		return nil
	case EventHoverCountry:
		return r.HoverCountry(ev.Code, ev.pointer())
	case EventLeaveCountry:
		return r.LeaveCountry(ev.Code)
	case EventMeasureTip:
		r.MeasureTooltip(ev.TipWidth, ev.TipHeight)
		return nil
	case EventClickCountry:
		return r.ClickCountry(ev.Code)
	case EventClickListItem:
		return r.ClickListItem(ev.Code)
	case EventCloseModal:
		r.HideModal()
		return nil
	case EventKeyDown:
		r.KeyDown(ev.Key)
		return nil
	case EventToggleTag:
		return r.ToggleTag(ev.Tag, ev.Checked)
	case EventHoverCategory:
		return r.HoverCategory(atlas.Category(ev.Category))
	case EventLeaveCategory:
		r.LeaveCategory()
		return nil
	case EventToggleLeft, EventToggleRight, EventOverlayClick, EventViewport:
		if s.sidebar == nil {
			s.logger.Debug("sidebar event before init", zap.String("type", ev.Type))
			return nil
		}
		switch ev.Type {
		case EventToggleLeft:
			s.sidebar.ToggleLeft()
		case EventToggleRight:
			s.sidebar.ToggleRight()
		case EventOverlayClick:
			s.sidebar.OverlayClick()
		case EventViewport:
			s.sidebar.Viewport(int(ev.Width))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// publishLocked diffs against the last published state and queues the
// ops, if any. Callers hold s.mu.
func (s *Session) publishLocked() {
	cur := s.renderer.Snapshot()
	ops := mapview.Diff(s.last, cur)
	s.last = cur

	if side := s.sidebarState(); side != s.lastSide {
		ops = append(ops, mapview.Op{Kind: mapview.OpSidebar, Data: side})
		s.lastSide = side
	}
	if len(ops) == 0 {
		return
	}
	select {
	case s.updates <- ops:
	case <-s.done:
	}
}

func (s *Session) sidebarState() SidebarState {
	if s.sidebar == nil {
		return SidebarState{}
	}
	st := s.sidebar.State()
	return SidebarState{
		Left:    st.Left,
		Right:   st.Right,
		Classes: st.Classes(),
		Enabled: s.sidebar.Enabled(),
	}
}

// afterFunc runs scheduled renderer work on a timer, under the session
// lock, and publishes whatever it changed.
func (s *Session) afterFunc(d time.Duration, f func()) {
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, t)
		if s.closed {
			return
		}
		f()
		s.publishLocked()
	})
	s.timers[t] = struct{}{}
}

// Snapshot copies the current element state.
func (s *Session) Snapshot() mapview.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Snapshot()
}

// Sidebar returns the current sidebar state.
func (s *Session) Sidebar() SidebarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarState()
}

// Close stops pending timers and ends the session. It is safe to call more
// than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		for t := range s.timers {
			t.Stop()
		}
		s.timers = nil
	})
}
