// Package atlastest provides small datasets for tests.
package atlastest

import "github.com/ziadkadry99/malabomap/internal/atlas"

// Metadata returns the standard category and tag metadata.
func Metadata() atlas.Metadata {
	return atlas.Metadata{
		Categories: map[atlas.Category]atlas.CategoryMeta{
			atlas.CategoryRatified:  {Label: "Ratified", Color: "#2e7d32", Order: 1},
			atlas.CategorySigned:    {Label: "Signed", Color: "#f9a825", Order: 2},
			atlas.CategoryNotSigned: {Label: "Not signed", Color: "#9e9e9e", Order: 3},
		},
		Tags: map[string]string{
			"CYBER":  "Cybersecurity strategy",
			"DATA":   "Data protection law",
			"AI":     "AI strategy",
			"UNUSED": "Unused tag",
		},
	}
}

// KenyaChad returns the two-country dataset: KE is fully ratified and
// carries the CYBER tag, TD has no dates and no tags.
func KenyaChad() *atlas.Dataset {
	return &atlas.Dataset{
		Countries: map[string]atlas.Country{
			"KE": {
				Name: "Kenya",
				Tags: []string{"CYBER"},
				Dates: atlas.Dates{
					Signature:    "2014-06-27",
					Ratification: "2021-03-01",
					Deposit:      "2021-04-01",
				},
				Sections: []atlas.Section{
					{Heading: "Overview", Content: "Kenya ratified the convention."},
					{Heading: "Empty"},
					{
						Heading: "Strategies",
						SubSections: []atlas.SubSection{
							{Heading: "National Cybersecurity Strategy", Content: "Adopted 2022.", Link: "https://example.org/ke"},
						},
					},
				},
				Paths: "M 10 10 L 20 10 L 20 20 Z",
			},
			"TD": {
				Name:  "Chad",
				Tags:  []string{},
				Paths: "M 30 30 L 40 30 L 40 40 Z",
			},
		},
		Metadata: Metadata(),
	}
}

// Africa returns a larger dataset covering all three categories and
// overlapping tags.
func Africa() *atlas.Dataset {
	ds := KenyaChad()
	ds.Countries["NG"] = atlas.Country{
		Name:  "Nigeria",
		Tags:  []string{"DATA", "CYBER"},
		Dates: atlas.Dates{Signature: "2015-01-01", Ratification: "2020-01-01"},
		Sections: []atlas.Section{
			{Heading: "Overview", Content: "Ratified but not yet deposited."},
		},
		Paths: "M 50 50 L 60 50 L 60 60 Z",
	}
	ds.Countries["ZA"] = atlas.Country{
		Name:  "South Africa",
		Tags:  []string{"DATA", "AI"},
		Dates: atlas.Dates{Signature: "2019-02-09"},
		Paths: "M 70 70 L 80 70 L 80 80 Z",
	}
	ds.Countries["GH"] = atlas.Country{
		Name:  "Ghana",
		Tags:  []string{"AI"},
		Dates: atlas.Dates{Signature: "2017-01-01", Ratification: "2018-05-01", Deposit: "2019-05-13"},
		Paths: "M 90 90 L 95 90 L 95 95 Z",
	}
	ds.Countries["EG"] = atlas.Country{
		Name:  "Egypt",
		Paths: "M 100 100 L 105 100 L 105 105 Z",
	}
	return ds
}
