package main

import (
	"errors"
	"fmt"
	"io"
	"startpage/internal/links"
	"strings"
)

type AmbiguousMatchError struct {
	Query   string
	Matches []links.Link
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple links match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple links match. Please be more specific:")
	for _, l := range e.Matches {
		fmt.Fprintf(w, "  - %s (%s) [%s]\n", l.Title, l.URL, l.Category)
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

// findLink resolves query against titles, URLs and categories. A title that
// equals the query outright wins over partial matches.
func findLink(repo *links.Repository, query string) (links.Link, error) {
	matches := repo.Search(query)
	if len(matches) == 0 {
		return links.Link{}, fmt.Errorf("no link found matching: %s", query)
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	var exact []links.Link
	for _, l := range matches {
		if strings.EqualFold(l.Title, strings.TrimSpace(query)) {
			exact = append(exact, l)
		}
	}
	// Identical duplicates resolve to the first one, like every other lookup.
	if len(exact) > 0 && allEqual(exact) {
		return exact[0], nil
	}
	return links.Link{}, &AmbiguousMatchError{Query: query, Matches: matches}
}

func allEqual(ls []links.Link) bool {
	for _, l := range ls[1:] {
		if l != ls[0] {
			return false
		}
	}
	return true
}
