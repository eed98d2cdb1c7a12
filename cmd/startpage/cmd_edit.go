package main

import (
	"fmt"
	"startpage/internal/app"
	"startpage/internal/links"
	"strings"
)

type EditCmd struct {
	Query    string `arg:"" help:"Link title or partial match" completion:"startpage ls -n"`
	Title    string `help:"New title"`
	URL      string `help:"New URL"`
	Category string `short:"c" help:"New category" completion:"startpage category ls -n"`
}

func (cmd *EditCmd) applyEdits(l links.Link) links.Link {
	if cmd.Title != "" {
		l.Title = cmd.Title
	}
	if cmd.URL != "" {
		l.URL = cmd.URL
	}
	if cmd.Category != "" {
		l.Category = cmd.Category
	}
	return l
}

func (cmd *EditCmd) Run(g *Globals) error {
	link, err := findLink(g.App.Repo(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	next := cmd.applyEdits(link)
	if next == link {
		fmt.Fprintln(g.Out, "Nothing to change.")
		return nil
	}

	err = g.App.Dispatch(g.ctx(), app.EditLink{
		Original: link,
		Title:    next.Title,
		URL:      next.URL,
		Category: next.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to update link %q: %w", link.Title, err)
	}

	fmt.Fprintf(g.Out, "Updated: %s\n", strings.TrimSpace(next.Title))
	return nil
}
