package mapview

import (
	"html/template"
)

// Snapshot is a copy of every mutable element, used to diff states and to
// render pages.
type Snapshot struct {
	Shapes     []Shape
	Items      []ListItem
	Categories []CategoryOption
	Tags       []TagOption
	Tooltip    Tooltip
	Modal      Modal
	Selected   string
	ActiveTags []string
}

// Snapshot copies the current element state.
func (r *Renderer) Snapshot() Snapshot {
	snap := Snapshot{
		Shapes:     make([]Shape, len(r.shapes)),
		Items:      make([]ListItem, len(r.items)),
		Categories: make([]CategoryOption, len(r.categories)),
		Tags:       make([]TagOption, len(r.tags)),
		Tooltip:    r.tooltip,
		Modal:      r.modal,
		Selected:   r.selected,
		ActiveTags: r.ActiveTags(),
	}
	for i, s := range r.shapes {
		snap.Shapes[i] = *s
	}
	for i, item := range r.items {
		snap.Items[i] = *item
	}
	for i, c := range r.categories {
		snap.Categories[i] = *c
	}
	for i, t := range r.tags {
		snap.Tags[i] = *t
	}
	return snap
}

// Op kinds sent to the page.
const (
	OpShape   = "shape"
	OpItem    = "item"
	OpCount   = "count"
	OpTag     = "tag"
	OpTooltip = "tooltip"
	OpModal   = "modal"
	OpSidebar = "sidebar"
)

// Op is one element update for the page to apply.
type Op struct {
	Kind string `json:"kind"`
	Key  string `json:"key,omitempty"`
	Data any    `json:"data"`
}

type ShapeState struct {
	Fill   string `json:"fill"`
	Active bool   `json:"active"`
}

type ItemState struct {
	Active bool `json:"active"`
}

type CountState struct {
	Count    int  `json:"count"`
	Updating bool `json:"updating"`
}

type TagState struct {
	Checked bool `json:"checked"`
}

type TooltipState struct {
	Visible bool          `json:"visible"`
	Left    float64       `json:"left"`
	Top     float64       `json:"top"`
	Content template.HTML `json:"content,omitempty"`
}

type ModalState struct {
	Active bool          `json:"active"`
	Code   string        `json:"code,omitempty"`
	Title  string        `json:"title,omitempty"`
	Body   template.HTML `json:"body,omitempty"`
}

// Diff lists the ops that turn prev into cur. Both snapshots must come
// from the same Renderer, so their element slices line up.
func Diff(prev, cur Snapshot) []Op {
	var ops []Op
	for i, s := range cur.Shapes {
		if i >= len(prev.Shapes) || prev.Shapes[i].Fill != s.Fill || prev.Shapes[i].Active != s.Active {
			ops = append(ops, Op{Kind: OpShape, Key: s.Code, Data: ShapeState{Fill: s.Fill, Active: s.Active}})
		}
	}
	for i, item := range cur.Items {
		if i >= len(prev.Items) || prev.Items[i].Active != item.Active {
			ops = append(ops, Op{Kind: OpItem, Key: item.Code, Data: ItemState{Active: item.Active}})
		}
	}
	for i, c := range cur.Categories {
		if i >= len(prev.Categories) || prev.Categories[i].Count != c.Count || prev.Categories[i].Updating != c.Updating {
			ops = append(ops, Op{Kind: OpCount, Key: string(c.ID), Data: CountState{Count: c.Count, Updating: c.Updating}})
		}
	}
	for i, t := range cur.Tags {
		if i >= len(prev.Tags) || prev.Tags[i].Checked != t.Checked {
			ops = append(ops, Op{Kind: OpTag, Key: t.ID, Data: TagState{Checked: t.Checked}})
		}
	}
	if prev.Tooltip != cur.Tooltip {
		st := TooltipState(cur.Tooltip)
		if prev.Tooltip.Content == cur.Tooltip.Content {
			st.Content = ""
		}
		ops = append(ops, Op{Kind: OpTooltip, Data: st})
	}
	if prev.Modal != cur.Modal {
		st := ModalState(cur.Modal)
		if prev.Modal.Code == cur.Modal.Code && prev.Modal.Title == cur.Modal.Title && prev.Modal.Body == cur.Modal.Body {
			// Only the visibility changed; the page already holds the content.
			st = ModalState{Active: cur.Modal.Active}
		}
		ops = append(ops, Op{Kind: OpModal, Data: st})
	}
	return ops
}
