package atlas_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/atlas/atlastest"
)

func TestDetermineCategory(t *testing.T) {
	tests := []struct {
		name  string
		dates atlas.Dates
		want  atlas.Category
	}{
		{"no dates", atlas.Dates{}, atlas.CategoryNotSigned},
		{"signature only", atlas.Dates{Signature: "2014"}, atlas.CategorySigned},
		{"ratification without deposit", atlas.Dates{Signature: "2014", Ratification: "2020"}, atlas.CategorySigned},
		{"deposit without ratification", atlas.Dates{Signature: "2014", Deposit: "2020"}, atlas.CategorySigned},
		{"ratified and deposited", atlas.Dates{Signature: "2014", Ratification: "2020", Deposit: "2021"}, atlas.CategoryRatified},
		{"accession without signature", atlas.Dates{Ratification: "2020", Deposit: "2021"}, atlas.CategoryRatified},
		{"ratification only", atlas.Dates{Ratification: "2020"}, atlas.CategoryNotSigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := atlas.DetermineCategory(atlas.Country{Dates: tt.dates})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineCategoryExhaustive(t *testing.T) {
	values := []string{"", "2020-01-01"}
	for _, sig := range values {
		for _, rat := range values {
			for _, dep := range values {
				c := atlas.Country{Dates: atlas.Dates{Signature: sig, Ratification: rat, Deposit: dep}}
				got := atlas.DetermineCategory(c)
				if !got.Valid() {
					t.Fatalf("invalid category %q for %+v", got, c.Dates)
				}
				if got == atlas.CategoryRatified && (rat == "" || dep == "") {
					t.Errorf("ratified without both dates: %+v", c.Dates)
				}
			}
		}
	}
}

func TestCategoryCountsMatchBruteForce(t *testing.T) {
	ds := atlastest.Africa()
	tags := []string{"CYBER", "DATA", "AI", "UNUSED"}

	// Every subset of the known tags.
	for mask := 0; mask < 1<<len(tags); mask++ {
		active := atlas.NewTagSet()
		for i, tag := range tags {
			if mask&(1<<i) != 0 {
				active.Add(tag)
			}
		}

		got := ds.CategoryCounts(active)

		want := map[atlas.Category]int{}
		filtered := 0
		for _, c := range ds.Countries {
			match := len(active) == 0
			for _, tag := range c.Tags {
				if active.Has(tag) {
					match = true
				}
			}
			if match {
				want[atlas.DetermineCategory(c)]++
				filtered++
			}
		}

		total := 0
		for _, cat := range atlas.Categories {
			assert.Equal(t, want[cat], got[cat], "mask %b category %s", mask, cat)
			total += got[cat]
		}
		assert.Equal(t, filtered, total, "mask %b total", mask)
	}
}

func TestCategoryCountsEmptyFilterCountsAll(t *testing.T) {
	ds := atlastest.Africa()
	counts := ds.CategoryCounts(nil)
	assert.Equal(t, 2, counts[atlas.CategoryRatified])
	assert.Equal(t, 2, counts[atlas.CategorySigned])
	assert.Equal(t, 2, counts[atlas.CategoryNotSigned])
}

func TestTagCounts(t *testing.T) {
	ds := atlastest.Africa()
	counts := ds.TagCounts()
	assert.Equal(t, 2, counts["CYBER"])
	assert.Equal(t, 2, counts["DATA"])
	assert.Equal(t, 2, counts["AI"])
	assert.Zero(t, counts["UNUSED"])
}

func TestCodesByName(t *testing.T) {
	ds := atlastest.Africa()
	assert.Equal(t, []string{"TD", "EG", "GH", "KE", "NG", "ZA"}, ds.CodesByName())
}

func TestCodesByNameAccented(t *testing.T) {
	ds := &atlas.Dataset{
		Countries: map[string]atlas.Country{
			"RW": {Name: "Rwanda"},
			"ST": {Name: "São Tomé and Príncipe"},
			"SN": {Name: "Senegal"},
			"SD": {Name: "Sudan"},
			"CI": {Name: "Côte d'Ivoire"},
			"CM": {Name: "cameroon"},
		},
		Metadata: atlastest.Metadata(),
	}
	assert.Equal(t, []string{"CM", "CI", "RW", "ST", "SN", "SD"}, ds.CodesByName())
}

func TestOrderedCategories(t *testing.T) {
	ds := atlastest.KenyaChad()
	meta := ds.Metadata.Categories[atlas.CategoryRatified]
	meta.Order = 9
	ds.Metadata.Categories[atlas.CategoryRatified] = meta

	assert.Equal(t, []atlas.Category{atlas.CategorySigned, atlas.CategoryNotSigned, atlas.CategoryRatified}, ds.OrderedCategories())
}

func TestTagIDsSortedByLabel(t *testing.T) {
	ds := atlastest.KenyaChad()
	assert.Equal(t, []string{"AI", "CYBER", "DATA", "UNUSED"}, ds.TagIDs())
}

func TestTagLabelsKeepsUnknownIDs(t *testing.T) {
	ds := atlastest.KenyaChad()
	assert.Equal(t, []string{"AI strategy", "MYSTERY"}, ds.TagLabels([]string{"AI", "MYSTERY"}))
}

func TestDecode(t *testing.T) {
	doc := `{
		"countries": {
			"KE": {
				"name": "Kenya",
				"tags": ["CYBER"],
				"dates": {"signature": "2014", "ratification": "2021", "deposit": "2021"},
				"sections": [{"heading": "Overview", "sub-sections": [{"heading": "Law", "link": "https://example.org"}]}],
				"paths": "M 0 0 Z"
			}
		},
		"metadata": {
			"categories": {
				"RATIFIED": {"label": "Ratified", "color": "#0a0", "order": 1},
				"SIGNED": {"label": "Signed", "color": "#aa0", "order": 2},
				"NOT_SIGNED": {"label": "Not signed", "color": "#aaa", "order": 3}
			},
			"tags": {"CYBER": "Cybersecurity strategy"}
		}
	}`

	ds, err := atlas.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	ke, ok := ds.Country("KE")
	require.True(t, ok)
	assert.Equal(t, atlas.CategoryRatified, atlas.DetermineCategory(ke))
	require.Len(t, ke.Sections, 1)
	require.Len(t, ke.Sections[0].SubSections, 1)
	assert.Equal(t, "https://example.org", ke.Sections[0].SubSections[0].Link)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := atlas.Decode(strings.NewReader(`{"countries": [`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ds := atlastest.KenyaChad()
	require.NoError(t, ds.Validate())

	delete(ds.Metadata.Categories, atlas.CategorySigned)
	ds.Countries["XX"] = atlas.Country{}

	err := ds.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, atlas.ErrInvalidDataset))
	assert.Contains(t, err.Error(), "SIGNED missing")
	assert.Contains(t, err.Error(), "XX has no name")
}

func TestWarnings(t *testing.T) {
	ds := atlastest.KenyaChad()
	assert.Empty(t, ds.Warnings())

	ds.Countries["XX"] = atlas.Country{Name: "Nowhere", Tags: []string{"BOGUS"}}
	warnings := ds.Warnings()
	assert.Len(t, warnings, 2)
}

func TestSectionEmpty(t *testing.T) {
	assert.True(t, atlas.Section{Heading: "x"}.Empty())
	assert.False(t, atlas.Section{Heading: "x", Content: "  "}.Empty())
	assert.False(t, atlas.Section{Heading: "x", Content: "body"}.Empty())
	assert.False(t, atlas.Section{Heading: "x", SubSections: []atlas.SubSection{{Heading: "y"}}}.Empty())
}
