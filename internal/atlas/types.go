package atlas

// Category is the Malabo Convention status derived from a country's treaty dates.
type Category string

const (
	CategoryRatified  Category = "RATIFIED"
	CategorySigned    Category = "SIGNED"
	CategoryNotSigned Category = "NOT_SIGNED"
)

// Categories lists every category in its canonical order.
var Categories = []Category{CategoryRatified, CategorySigned, CategoryNotSigned}

// Valid reports whether c is one of the fixed category ids.
func (c Category) Valid() bool {
	switch c {
	case CategoryRatified, CategorySigned, CategoryNotSigned:
		return true
	}
	return false
}

// Dataset is the country-data document, loaded once per process.
type Dataset struct {
	Countries map[string]Country `json:"countries"`
	Metadata  Metadata           `json:"metadata"`
}

// Metadata holds the display metadata for categories and tags.
type Metadata struct {
	Categories map[Category]CategoryMeta `json:"categories"`
	Tags       map[string]string         `json:"tags"`
}

// CategoryMeta describes how a category is labelled and colored.
type CategoryMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// Country is a single country record.
type Country struct {
	Name     string    `json:"name"`
	Tags     []string  `json:"tags"`
	Dates    Dates     `json:"dates"`
	Sections []Section `json:"sections"`
	Paths    string    `json:"paths"`
}

// Dates are the treaty milestones. An empty string means the event has not happened.
type Dates struct {
	Signature    string `json:"signature,omitempty"`
	Ratification string `json:"ratification,omitempty"`
	Deposit      string `json:"deposit,omitempty"`
}

// Section is a top-level block of the country detail view.
type Section struct {
	Heading     string       `json:"heading"`
	Content     string       `json:"content,omitempty"`
	SubSections []SubSection `json:"sub-sections,omitempty"`
}

// Empty reports whether the section has neither content nor sub-sections.
// Any non-empty content counts, whitespace included.
func (s Section) Empty() bool {
	return s.Content == "" && len(s.SubSections) == 0
}

// SubSection is a nested block inside a Section.
type SubSection struct {
	Heading string `json:"heading"`
	Content string `json:"content,omitempty"`
	Link    string `json:"link,omitempty"`
}

// TagSet is a set of tag ids.
type TagSet map[string]struct{}

// NewTagSet builds a set from the given ids.
func NewTagSet(ids ...string) TagSet {
	s := make(TagSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s TagSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s TagSet) Add(id string)    { s[id] = struct{}{} }
func (s TagSet) Remove(id string) { delete(s, id) }

// Intersects reports whether any of tags is in the set.
func (s TagSet) Intersects(tags []string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}
