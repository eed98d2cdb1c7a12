package proptest

import (
	"slices"
	"startpage/internal/links"
	"strings"

	"pgregory.net/rapid"
)

func verifyStructuralInvariants(t *rapid.T, repo *links.Repository) {
	t.Helper()
	ls := repo.Links()
	cats := repo.Categories()

	if repo.Count() != len(ls) {
		t.Fatalf("Count()=%d but len(Links())=%d", repo.Count(), len(ls))
	}

	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			t.Fatalf("category %q registered twice: %v", c, cats)
		}
		seen[c] = true
	}

	for _, l := range ls {
		if l.Title == "" || l.URL == "" || l.Category == "" {
			t.Fatalf("link with empty field stored: %+v", l)
		}
		if l != links.NewLink(l.Title, l.URL, l.Category) {
			t.Fatalf("link stored untrimmed: %q", l)
		}
	}

	var firstSeen []string
	for _, l := range ls {
		if !slices.Contains(firstSeen, l.Category) {
			firstSeen = append(firstSeen, l.Category)
		}
	}
	groups := links.GroupByCategory(ls)
	if len(groups) != len(firstSeen) {
		t.Fatalf("GroupByCategory returned %d groups for %d categories", len(groups), len(firstSeen))
	}
	total := 0
	for i, g := range groups {
		if g.Category != firstSeen[i] {
			t.Fatalf("group %d is %q, first appearance order says %q", i, g.Category, firstSeen[i])
		}
		for _, l := range g.Links {
			if l.Category != g.Category {
				t.Fatalf("link %v grouped under %q", l, g.Category)
			}
		}
		total += len(g.Links)
	}
	if total != len(ls) {
		t.Fatalf("groups hold %d links, repository has %d", total, len(ls))
	}
}

func lower(s string) string {
	return strings.ToLower(s)
}
