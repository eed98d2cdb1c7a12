package main

import (
	"fmt"
	"startpage/internal/app"
	"startpage/internal/view"
)

type ListCmd struct {
	Search string `short:"q" help:"Only show links whose title, URL or category contains this"`
	Names  bool   `short:"n" help:"Output only link titles (one per line)"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	if cmd.Names {
		for _, l := range g.App.Repo().Search(cmd.Search) {
			fmt.Fprintln(g.Out, l.Title)
		}
		return nil
	}

	var page view.Page
	if cmd.Search != "" {
		if err := g.App.Dispatch(g.ctx(), app.Search{Term: cmd.Search}); err != nil {
			return err
		}
		page = g.App.Page()
	} else {
		page = view.Project(g.App.Repo().Links(), "")
	}

	theme := g.App.Prefs().CurrentTheme(g.ctx())
	fmt.Fprint(g.Out, g.Render.RenderPage(page, theme))
	return nil
}
