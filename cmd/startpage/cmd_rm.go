package main

import (
	"fmt"
	"startpage/internal/app"
)

type RmCmd struct {
	Query string `arg:"" help:"Link title or partial match" completion:"startpage ls -n"`
}

func (cmd *RmCmd) Run(g *Globals) error {
	link, err := findLink(g.App.Repo(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	confirm, declined := g.gate()
	if err := g.App.DispatchWith(g.ctx(), app.DeleteLink{Link: link}, confirm); err != nil {
		return fmt.Errorf("failed to delete link %q: %w", link.Title, err)
	}
	if *declined {
		fmt.Fprintln(g.Out, "Cancelled.")
		return nil
	}

	fmt.Fprintf(g.Out, "Removed: %s\n", link.Title)
	return nil
}
