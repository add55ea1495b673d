package mapview

import "github.com/ziadkadry99/malabomap/internal/atlas"

// CategoryStyle is how one category is labelled and colored.
type CategoryStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Palette carries what a page without a session needs to filter, recolor
// and label the map by itself.
type Palette struct {
	Categories    map[atlas.Category]CategoryStyle `json:"categories"`
	Tags          map[string]string                `json:"tags"`
	NeutralColor  string                           `json:"neutralColor"`
	FilteredColor string                           `json:"filteredColor"`
	CountDelayMS  int64                            `json:"countDelayMs"`
}

// Palette returns the category styles, tag labels, colors and count delay
// the renderer works with.
func (r *Renderer) Palette() Palette {
	p := Palette{
		Categories:    make(map[atlas.Category]CategoryStyle, len(r.categories)),
		Tags:          make(map[string]string, len(r.ds.Metadata.Tags)),
		NeutralColor:  r.opts.NeutralColor,
		FilteredColor: r.opts.FilteredColor,
		CountDelayMS:  r.opts.CountDelay.Milliseconds(),
	}
	for _, c := range r.categories {
		p.Categories[c.ID] = CategoryStyle{Label: c.Label, Color: c.Color}
	}
	for id, label := range r.ds.Metadata.Tags {
		p.Tags[id] = label
	}
	return p
}
