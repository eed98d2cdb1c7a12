package proptest

import (
	"startpage/internal/links"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertLinksEqual(t *rapid.T, expected, actual []links.Link) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func assertCategoriesEqual(t *rapid.T, expected, actual []string) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func assertSubset(t *rapid.T, subset, superset []links.Link) {
	t.Helper()
	counts := make(map[links.Link]int, len(superset))
	for _, l := range superset {
		counts[l]++
	}
	for _, l := range subset {
		if counts[l] == 0 {
			t.Fatalf("subset contains %v which is not in superset", l)
		}
		counts[l]--
	}
}

// assertSameMultiset checks that b is a permutation of a.
func assertSameMultiset(t *rapid.T, a, b []links.Link) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	assertSubset(t, a, b)
}
