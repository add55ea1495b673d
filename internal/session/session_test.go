package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/atlas/atlastest"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/sidebar"
)

func newManager(delay time.Duration) *Manager {
	opts := mapview.DefaultOptions()
	opts.CountDelay = delay
	return NewManager(opts, sidebar.DefaultBreakpoint, nil)
}

func receive(t *testing.T, s *Session) []mapview.Op {
	t.Helper()
	select {
	case ops := <-s.Updates():
		return ops
	case <-time.After(2 * time.Second):
		t.Fatal("no update published")
		return nil
	}
}

func assertQuiet(t *testing.T, s *Session) {
	t.Helper()
	select {
	case ops := <-s.Updates():
		t.Fatalf("unexpected update: %+v", ops)
	default:
	}
}

func findOp(ops []mapview.Op, kind, key string) (mapview.Op, bool) {
	for _, op := range ops {
		if op.Kind == kind && op.Key == key {
			return op, true
		}
	}
	return mapview.Op{}, false
}

func TestClickCountryPublishesContentThenActivation(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := newManager(0)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	require.NoError(t, s.Dispatch(Event{Type: EventClickCountry, Code: "KE"}))

	first := receive(t, s)
	shape, ok := findOp(first, mapview.OpShape, "KE")
	require.True(t, ok, "shape op missing: %+v", first)
	assert.True(t, shape.Data.(mapview.ShapeState).Active)
	_, ok = findOp(first, mapview.OpItem, "KE")
	assert.True(t, ok, "list item op missing")

	modal, ok := findOp(first, mapview.OpModal, "")
	require.True(t, ok)
	state := modal.Data.(mapview.ModalState)
	assert.False(t, state.Active, "modal must not activate with its content")
	assert.Equal(t, "Kenya", state.Title)

	second := receive(t, s)
	require.Len(t, second, 1)
	assert.True(t, second[0].Data.(mapview.ModalState).Active)
	assertQuiet(t, s)
}

func TestTooltipFlipsByMeasuredSize(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := newManager(0)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	// Hidden before the hover, so the page could not measure it yet.
	require.NoError(t, s.Dispatch(Event{Type: EventHoverCountry, Code: "KE", X: 900, Y: 100, Width: 1000, Height: 800}))
	tip, ok := findOp(receive(t, s), mapview.OpTooltip, "")
	require.True(t, ok)
	assert.Equal(t, 915.0, tip.Data.(mapview.TooltipState).Left)

	require.NoError(t, s.Dispatch(Event{Type: EventMeasureTip, TipWidth: 200, TipHeight: 80}))
	ops := receive(t, s)
	require.Len(t, ops, 1)
	state := ops[0].Data.(mapview.TooltipState)
	assert.True(t, state.Visible)
	assert.Equal(t, 900.0-200-15, state.Left)
	assert.Equal(t, 115.0, state.Top)

	// A hover that already carries the size is placed correctly at once.
	require.NoError(t, s.Dispatch(Event{Type: EventLeaveCountry, Code: "KE"}))
	receive(t, s)
	require.NoError(t, s.Dispatch(Event{Type: EventHoverCountry, Code: "TD", X: 990, Y: 780, Width: 1000, Height: 800, TipWidth: 200, TipHeight: 80}))
	tip, ok = findOp(receive(t, s), mapview.OpTooltip, "")
	require.True(t, ok)
	assert.Equal(t, 775.0, tip.Data.(mapview.TooltipState).Left)
	assert.Equal(t, 780.0-80-15, tip.Data.(mapview.TooltipState).Top)

	// Measuring a hidden tooltip changes nothing.
	require.NoError(t, s.Dispatch(Event{Type: EventLeaveCountry, Code: "TD"}))
	receive(t, s)
	require.NoError(t, s.Dispatch(Event{Type: EventMeasureTip, TipWidth: 10, TipHeight: 10}))
	assertQuiet(t, s)
}

func TestToggleTagPublishesDelayedCount(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := newManager(10 * time.Millisecond)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	require.NoError(t, s.Dispatch(Event{Type: EventToggleTag, Tag: "CYBER", Checked: true}))

	first := receive(t, s)
	tag, ok := findOp(first, mapview.OpTag, "CYBER")
	require.True(t, ok)
	assert.True(t, tag.Data.(mapview.TagState).Checked)

	td, ok := findOp(first, mapview.OpShape, "TD")
	require.True(t, ok)
	assert.Equal(t, mapview.DefaultFilteredColor, td.Data.(mapview.ShapeState).Fill)

	pending, ok := findOp(first, mapview.OpCount, string(atlas.CategoryNotSigned))
	require.True(t, ok)
	assert.Equal(t, mapview.CountState{Count: 1, Updating: true}, pending.Data)

	settled := receive(t, s)
	count, ok := findOp(settled, mapview.OpCount, string(atlas.CategoryNotSigned))
	require.True(t, ok)
	assert.Equal(t, mapview.CountState{Count: 0, Updating: false}, count.Data)
}

func TestDispatchErrors(t *testing.T) {
	m := newManager(0)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	tests := []struct {
		ev   Event
		want error
	}{
		{Event{Type: EventClickCountry, Code: "ZZ"}, mapview.ErrUnknownCountry},
		{Event{Type: EventToggleTag, Tag: "NOPE", Checked: true}, mapview.ErrUnknownTag},
		{Event{Type: EventHoverCategory, Category: "MAYBE"}, mapview.ErrUnknownCategory},
		{Event{Type: "dance"}, ErrUnknownEvent},
	}
	for _, tt := range tests {
		err := s.Dispatch(tt.ev)
		assert.True(t, errors.Is(err, tt.want), "%s: got %v", tt.ev.Type, err)
	}
	assertQuiet(t, s)
}

func TestSidebarEvents(t *testing.T) {
	m := newManager(0)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	// Before init the sidebar is unbound and toggles do nothing.
	require.NoError(t, s.Dispatch(Event{Type: EventToggleLeft}))
	assertQuiet(t, s)

	require.NoError(t, s.Dispatch(Event{Type: EventInit, Width: 400}))
	bound := receive(t, s)
	require.Len(t, bound, 1)
	assert.Equal(t, SidebarState{Enabled: true}, bound[0].Data)

	require.NoError(t, s.Dispatch(Event{Type: EventToggleLeft}))
	ops := receive(t, s)
	assert.Equal(t, SidebarState{Left: true, Classes: sidebar.ShowLeftClass, Enabled: true}, ops[0].Data)

	require.NoError(t, s.Dispatch(Event{Type: EventToggleRight}))
	ops = receive(t, s)
	assert.Equal(t, SidebarState{Right: true, Classes: sidebar.ShowRightClass, Enabled: true}, ops[0].Data)

	require.NoError(t, s.Dispatch(Event{Type: EventViewport, Width: 1024}))
	ops = receive(t, s)
	assert.Equal(t, SidebarState{Enabled: true}, ops[0].Data)
}

func TestInitWithMissingElementsDisablesSidebar(t *testing.T) {
	m := newManager(0)
	defer m.CloseAll()
	s := m.Create(atlastest.KenyaChad())

	el := sidebar.AllElements
	el.Overlay = false
	require.NoError(t, s.Dispatch(Event{Type: EventInit, Elements: &el}))
	require.NoError(t, s.Dispatch(Event{Type: EventToggleLeft}))
	assertQuiet(t, s)
	assert.Equal(t, SidebarState{}, s.Sidebar())

	// The map keeps working.
	require.NoError(t, s.Dispatch(Event{Type: EventHoverCountry, Code: "KE", X: 10, Y: 10}))
	ops := receive(t, s)
	_, ok := findOp(ops, mapview.OpTooltip, "")
	assert.True(t, ok)
}

func TestCloseStopsPendingCounts(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := newManager(time.Hour)
	s := m.Create(atlastest.KenyaChad())

	require.NoError(t, s.Dispatch(Event{Type: EventToggleTag, Tag: "CYBER", Checked: true}))
	receive(t, s)

	m.Remove(s.ID)
	<-s.Done()
	assert.ErrorIs(t, s.Dispatch(Event{Type: EventLeaveCategory}), ErrClosed)
	_, err := m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager(t *testing.T) {
	m := newManager(0)
	a := m.Create(atlastest.KenyaChad())
	b := m.Create(atlastest.Africa())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, m.IDs(), 2)

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	m.CloseAll()
	assert.Empty(t, m.IDs())
	select {
	case <-b.Done():
	default:
		t.Error("CloseAll left a session open")
	}
}
