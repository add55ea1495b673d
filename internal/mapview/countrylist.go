package mapview

import (
	"fmt"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

func (r *Renderer) buildCountryList() {
	for _, code := range r.ds.CodesByName() {
		c := r.ds.Countries[code]
		item := &ListItem{
			Code:  code,
			Name:  c.Name,
			Color: r.ds.CategoryColor(atlas.DetermineCategory(c)),
		}
		r.items = append(r.items, item)
		r.itemIndex[code] = item
	}
}

// SelectCountry makes code the single selected country. Both the list and
// the map route their clicks through here, so they can never disagree on
// which country is active.
func (r *Renderer) SelectCountry(code string) error {
	if _, ok := r.ds.Country(code); !ok {
		return fmt.Errorf("select %q: %w", code, ErrUnknownCountry)
	}

	r.clearActiveItems()
	r.clearActiveShapes()
	r.itemIndex[code].Active = true
	r.shapeIndex[code].Active = true
	r.selected = code

	return r.ShowModal(code)
}

// ClickListItem selects the country behind a list entry.
func (r *Renderer) ClickListItem(code string) error {
	return r.SelectCountry(code)
}

// Selected returns the selected country code, or "" when none is.
func (r *Renderer) Selected() string { return r.selected }

func (r *Renderer) clearActiveItems() {
	for _, item := range r.items {
		item.Active = false
	}
}
