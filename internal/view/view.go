// Package view projects repository state and a search term into what the
// page shows. Nothing here is authoritative; it is recomputed on every render.
package view

import (
	"fmt"
	"regexp"
	"strings"

	"startpage/internal/links"
)

type Group struct {
	Category string       `json:"category"`
	AnchorID string       `json:"anchorId"`
	Links    []links.Link `json:"links"` // visible members only
	Total    int          `json:"total"`
	Visible  bool         `json:"visible"`
}

type Stats struct {
	VisibleLinks      int `json:"visibleLinks"`
	TotalLinks        int `json:"totalLinks"`
	VisibleCategories int `json:"visibleCategories"`
}

type Page struct {
	Term   string  `json:"term"`
	Groups []Group `json:"groups"`
	Stats  Stats   `json:"stats"`
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// AnchorID is the element id a category heading is rendered with.
func AnchorID(category string) string {
	return "category-" + strings.ToLower(whitespaceRE.ReplaceAllString(category, "-"))
}

func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Project groups ls in first-appearance order and marks which links match
// term. An empty term shows everything.
func Project(ls []links.Link, term string) Page {
	term = NormalizeTerm(term)
	page := Page{Term: term}

	for _, g := range links.GroupByCategory(ls) {
		group := Group{
			Category: g.Category,
			AnchorID: AnchorID(g.Category),
			Total:    len(g.Links),
		}
		for _, l := range g.Links {
			if term == "" || links.Matches(l, term) {
				group.Links = append(group.Links, l)
			}
		}

		group.Visible = term == "" || len(group.Links) > 0
		page.Stats.TotalLinks += group.Total
		page.Stats.VisibleLinks += len(group.Links)
		if group.Visible {
			page.Stats.VisibleCategories++
		}
		page.Groups = append(page.Groups, group)
	}
	return page
}

// VisibleGroups drops the groups a search has hidden.
func (p Page) VisibleGroups() []Group {
	var out []Group
	for _, g := range p.Groups {
		if g.Visible {
			out = append(out, g)
		}
	}
	return out
}

// Summary is the status line shown while searching.
func (p Page) Summary() string {
	if p.Term == "" {
		return ""
	}
	return fmt.Sprintf("Found %d of %d links in %d categories",
		p.Stats.VisibleLinks, p.Stats.TotalLinks, p.Stats.VisibleCategories)
}

type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into runs that do and do not contain term,
// case-insensitively.
func Highlight(text, term string) []Segment {
	term = NormalizeTerm(term)
	if term == "" || text == "" {
		return []Segment{{Text: text}}
	}

	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	var segs []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}
