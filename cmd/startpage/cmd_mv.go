package main

import (
	"fmt"
	"startpage/internal/app"
	"strings"
)

type MvCmd struct {
	Query    string `arg:"" help:"Link title or partial match" completion:"startpage ls -n"`
	Category string `arg:"" optional:"" help:"Target category (defaults to the link's own)" completion:"startpage category ls -n"`
	Index    int    `short:"i" default:"-1" help:"Position within the category, starting at 0 (default: last)"`
}

func (cmd *MvCmd) Run(g *Globals) error {
	repo := g.App.Repo()
	link, err := findLink(repo, cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	target := strings.TrimSpace(cmd.Category)
	if target == "" {
		target = link.Category
	}
	index := cmd.Index
	if index < 0 {
		index = repo.CountIn(target)
	}

	if err := g.App.Dispatch(g.ctx(), app.MoveLink{Link: link, Category: target, Index: index}); err != nil {
		return fmt.Errorf("failed to move link %q: %w", link.Title, err)
	}

	if target == link.Category {
		fmt.Fprintf(g.Out, "Moved: %s to position %d in %s\n", link.Title, min(index, repo.CountIn(target)-1), target)
		return nil
	}
	fmt.Fprintf(g.Out, "Moved: %s to %s\n", link.Title, target)
	return nil
}
