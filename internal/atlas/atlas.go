package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidDataset is returned when a dataset fails validation.
var ErrInvalidDataset = errors.New("invalid dataset")

// DetermineCategory derives the status of a country from its dates.
// A country is ratified only when both the ratification and the deposit
// dates are present.
func DetermineCategory(c Country) Category {
	if c.Dates.Ratification != "" && c.Dates.Deposit != "" {
		return CategoryRatified
	}
	if c.Dates.Signature != "" {
		return CategorySigned
	}
	return CategoryNotSigned
}

// Decode parses a dataset document.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if ds.Countries == nil {
		ds.Countries = map[string]Country{}
	}
	if ds.Metadata.Tags == nil {
		ds.Metadata.Tags = map[string]string{}
	}
	return &ds, nil
}

// Country returns the record for code.
func (d *Dataset) Country(code string) (Country, bool) {
	c, ok := d.Countries[code]
	return c, ok
}

// MatchesTags reports whether c passes the tag filter. An empty filter
// matches every country.
func (d *Dataset) MatchesTags(c Country, active TagSet) bool {
	return len(active) == 0 || active.Intersects(c.Tags)
}

// CategoryCounts counts countries per category over the countries that
// match the active tag filter. Every category is present in the result.
func (d *Dataset) CategoryCounts(active TagSet) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = 0
	}
	for _, c := range d.Countries {
		if d.MatchesTags(c, active) {
			counts[DetermineCategory(c)]++
		}
	}
	return counts
}

// TagCounts counts countries per tag, ignoring any filter.
func (d *Dataset) TagCounts() map[string]int {
	counts := make(map[string]int, len(d.Metadata.Tags))
	for _, c := range d.Countries {
		for _, t := range c.Tags {
			counts[t]++
		}
	}
	return counts
}

// CodesByName returns country codes in alphabetical order of country name,
// using the root collation so accented names sort next to their base
// letters. Ties break on the code.
func (d *Dataset) CodesByName() []string {
	codes := d.Codes()
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(codes, func(i, j int) bool {
		if c := col.CompareString(d.Countries[codes[i]].Name, d.Countries[codes[j]].Name); c != 0 {
			return c < 0
		}
		return codes[i] < codes[j]
	})
	return codes
}

// Codes returns country codes in lexical order.
func (d *Dataset) Codes() []string {
	codes := make([]string, 0, len(d.Countries))
	for code := range d.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// OrderedCategories returns the categories sorted by their metadata order.
func (d *Dataset) OrderedCategories() []Category {
	cats := make([]Category, 0, len(Categories))
	cats = append(cats, Categories...)
	sort.SliceStable(cats, func(i, j int) bool {
		return d.Metadata.Categories[cats[i]].Order < d.Metadata.Categories[cats[j]].Order
	})
	return cats
}

// TagIDs returns the known tag ids sorted by label.
func (d *Dataset) TagIDs() []string {
	ids := make([]string, 0, len(d.Metadata.Tags))
	for id := range d.Metadata.Tags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := d.Metadata.Tags[ids[i]], d.Metadata.Tags[ids[j]]
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// CategoryColor returns the fill color configured for cat.
func (d *Dataset) CategoryColor(cat Category) string {
	return d.Metadata.Categories[cat].Color
}

// CategoryLabel returns the display label for cat.
func (d *Dataset) CategoryLabel(cat Category) string {
	return d.Metadata.Categories[cat].Label
}

// TagLabels maps tag ids to labels. Unknown ids keep their raw id.
func (d *Dataset) TagLabels(ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := d.Metadata.Tags[id]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, id)
		}
	}
	return labels
}

// Validate checks the invariants the renderer depends on.
func (d *Dataset) Validate() error {
	var errs []error
	for _, cat := range Categories {
		meta, ok := d.Metadata.Categories[cat]
		if !ok {
			errs = append(errs, fmt.Errorf("category %s missing from metadata", cat))
			continue
		}
		if meta.Color == "" {
			errs = append(errs, fmt.Errorf("category %s has no color", cat))
		}
	}
	for cat := range d.Metadata.Categories {
		if !cat.Valid() {
			errs = append(errs, fmt.Errorf("unknown category %q in metadata", cat))
		}
	}
	for _, code := range d.Codes() {
		if strings.TrimSpace(d.Countries[code].Name) == "" {
			errs = append(errs, fmt.Errorf("country %s has no name", code))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
	}
	return nil
}

// Warnings lists non-fatal dataset issues.
func (d *Dataset) Warnings() []string {
	var warnings []string
	for _, code := range d.Codes() {
		c := d.Countries[code]
		for _, t := range c.Tags {
			if _, ok := d.Metadata.Tags[t]; !ok {
				warnings = append(warnings, fmt.Sprintf("country %s references unknown tag %q", code, t))
			}
		}
		if strings.TrimSpace(c.Paths) == "" {
			warnings = append(warnings, fmt.Sprintf("country %s has no path data", code))
		}
	}
	return warnings
}
