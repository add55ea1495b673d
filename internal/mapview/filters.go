package mapview

import (
	"fmt"
	"sort"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

func (r *Renderer) buildFilters() {
	counts := r.ds.CategoryCounts(nil)
	for _, cat := range r.ds.OrderedCategories() {
		r.categories = append(r.categories, &CategoryOption{
			ID:      cat,
			Label:   r.ds.CategoryLabel(cat),
			Color:   r.ds.CategoryColor(cat),
			Count:   counts[cat],
			Pending: counts[cat],
		})
	}

	tagCounts := r.ds.TagCounts()
	for _, id := range r.ds.TagIDs() {
		r.tags = append(r.tags, &TagOption{
			ID:    id,
			Label: r.ds.Metadata.Tags[id],
			Count: tagCounts[id],
		})
	}
}

// ToggleTag adds or removes a tag from the active filter, refreshes the
// category counts and recolors the map.
func (r *Renderer) ToggleTag(id string, checked bool) error {
	var opt *TagOption
	for _, t := range r.tags {
		if t.ID == id {
			opt = t
			break
		}
	}
	if opt == nil {
		return fmt.Errorf("toggle %q: %w", id, ErrUnknownTag)
	}

	opt.Checked = checked
	if checked {
		r.filters.Tags.Add(id)
	} else {
		r.filters.Tags.Remove(id)
	}

	r.UpdateCategoryCounts()
	r.ApplyFilters()
	return nil
}

// UpdateCategoryCounts recomputes the category counts over the active tag
// filter. A changed count is flagged as updating and written once the
// configured delay has passed.
func (r *Renderer) UpdateCategoryCounts() {
	counts := r.ds.CategoryCounts(r.filters.Tags)
	for _, opt := range r.categories {
		n := counts[opt.ID]
		if n == opt.Count && !opt.Updating {
			continue
		}
		opt.Pending = n
		if opt.Updating {
			// A write is already scheduled; it will pick up the new value.
			continue
		}
		opt.Updating = true
		o := opt
		r.opts.Scheduler.AfterFunc(r.opts.CountDelay, func() {
			o.Count = o.Pending
			o.Updating = false
		})
	}
}

// CategoryCounts returns the counts for the current tag filter.
func (r *Renderer) CategoryCounts() map[atlas.Category]int {
	return r.ds.CategoryCounts(r.filters.Tags)
}

// ApplyFilters recolors every shape: the category color when the country
// matches the active tags, the filtered color otherwise.
func (r *Renderer) ApplyFilters() {
	for _, s := range r.shapes {
		c := r.ds.Countries[s.Code]
		if r.ds.MatchesTags(c, r.filters.Tags) {
			s.Fill = r.ds.CategoryColor(s.Category)
		} else {
			s.Fill = r.opts.FilteredColor
		}
	}
}

// HoverCategory temporarily shows only the countries in cat, in the
// category color, with every other country in the neutral color.
func (r *Renderer) HoverCategory(cat atlas.Category) error {
	if !cat.Valid() {
		return fmt.Errorf("hover %q: %w", cat, ErrUnknownCategory)
	}
	color := r.ds.CategoryColor(cat)
	for _, s := range r.shapes {
		if s.Category == cat {
			s.Fill = color
		} else {
			s.Fill = r.opts.NeutralColor
		}
	}
	return nil
}

// LeaveCategory reverts a category hover to the filter-based coloring.
func (r *Renderer) LeaveCategory() {
	r.ApplyFilters()
}

// ActiveTags returns the selected tag ids in sorted order.
func (r *Renderer) ActiveTags() []string {
	ids := make([]string, 0, len(r.filters.Tags))
	for id := range r.filters.Tags {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Filters returns the active filter selection.
func (r *Renderer) Filters() ActiveFilters { return r.filters }
