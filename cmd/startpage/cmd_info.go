package main

import (
	"fmt"
	"startpage/internal/config"
)

type InfoCmd struct{}

func (cmd *InfoCmd) Run(g *Globals) error {
	persistence := "persistent"
	if !g.App.Store().IsPersistent() {
		persistence = "in memory only"
	}

	if g.Config != nil {
		fmt.Fprintf(g.Out, "Backend: %s (%s)\n", g.Config.Backend, persistence)
		fmt.Fprintf(g.Out, "Store:   %s\n", config.ShortenPath(g.Config.StorePath))
	} else {
		fmt.Fprintf(g.Out, "Backend: %s\n", persistence)
	}
	fmt.Fprintf(g.Out, "Theme:   %s\n", g.App.Prefs().CurrentTheme(g.ctx()).Name)
	fmt.Fprintf(g.Out, "Links:   %d in %d categories\n", g.App.Repo().Count(), len(categoryNames(g.App.Repo())))
	return nil
}
