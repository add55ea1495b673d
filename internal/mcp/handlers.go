package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

// handleListCountries lists countries, optionally filtered by status and tags.
func (s *Server) handleListCountries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := atlas.Category(request.GetString("category", ""))
	if category != "" && !category.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", category)), nil
	}
	tags, err := s.parseTags(request.GetString("tags", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	n := 0
	for _, code := range s.ds.CodesByName() {
		c := s.ds.Countries[code]
		cat := atlas.DetermineCategory(c)
		if category != "" && cat != category {
			continue
		}
		if !s.ds.MatchesTags(c, tags) {
			continue
		}
		n++
		fmt.Fprintf(&b, "- %s (%s): %s", c.Name, code, s.ds.CategoryLabel(cat))
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(s.ds.TagLabels(c.Tags), ", "))
		}
		b.WriteString("\n")
	}

	if n == 0 {
		return mcp.NewToolResultText("No countries match."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d countries\n\n%s", n, b.String())), nil
}

// handleGetCountry returns the full record for one country.
func (s *Server) handleGetCountry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: code"), nil
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	c, ok := s.ds.Country(code)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown country code %q", code)), nil
	}
	return mcp.NewToolResultText(s.formatCountry(code, c)), nil
}

// handleCategoryCounts counts countries per status over a tag filter.
func (s *Server) handleCategoryCounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.parseTags(request.GetString("tags", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	counts := s.ds.CategoryCounts(tags)
	var b strings.Builder
	for _, cat := range s.ds.OrderedCategories() {
		fmt.Fprintf(&b, "%s: %d\n", s.ds.CategoryLabel(cat), counts[cat])
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleListTags lists the strategy tags with their static counts.
func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts := s.ds.TagCounts()
	var b strings.Builder
	for _, id := range s.ds.TagIDs() {
		fmt.Fprintf(&b, "- %s (%s): %d countries\n", s.ds.Metadata.Tags[id], id, counts[id])
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("No tags defined."), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// parseTags turns a comma-separated list into a tag set, rejecting ids
// the metadata does not define.
func (s *Server) parseTags(raw string) (atlas.TagSet, error) {
	tags := atlas.NewTagSet()
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := s.ds.Metadata.Tags[id]; !ok {
			return nil, fmt.Errorf("unknown tag %q", id)
		}
		tags.Add(id)
	}
	return tags, nil
}

func (s *Server) formatCountry(code string, c atlas.Country) string {
	var b strings.Builder
	cat := atlas.DetermineCategory(c)
	fmt.Fprintf(&b, "# %s (%s)\n\n", c.Name, code)
	fmt.Fprintf(&b, "Status: %s\n", s.ds.CategoryLabel(cat))

	dates := []struct{ label, value string }{
		{"Signature", c.Dates.Signature},
		{"Ratification", c.Dates.Ratification},
		{"Deposit", c.Dates.Deposit},
	}
	for _, d := range dates {
		if d.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", d.label, d.value)
		}
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "Strategies: %s\n", strings.Join(s.ds.TagLabels(c.Tags), ", "))
	}

	for _, sec := range c.Sections {
		if sec.Empty() {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", sec.Heading)
		if sec.Content != "" {
			fmt.Fprintf(&b, "\n%s\n", sec.Content)
		}
		for _, sub := range sec.SubSections {
			fmt.Fprintf(&b, "\n### %s\n", sub.Heading)
			if sub.Content != "" {
				fmt.Fprintf(&b, "\n%s\n", sub.Content)
			}
			if sub.Link != "" {
				fmt.Fprintf(&b, "\nMore information: %s\n", sub.Link)
			}
		}
	}
	return b.String()
}
