package main

import (
	"errors"
	"fmt"
	"slices"
	"startpage/internal/app"
	"startpage/internal/links"
	"strings"
	"text/tabwriter"
)

type CategoryCmd struct {
	Ls     CategoryLsCmd     `cmd:"" default:"1" help:"List categories with their link counts"`
	Rename CategoryRenameCmd `cmd:"" aliases:"mv" help:"Rename a category"`
	Rm     CategoryRmCmd     `cmd:"" help:"Delete a category and all its links"`
}

// categoryNames is the registry followed by any category that only exists
// through its links.
func categoryNames(repo *links.Repository) []string {
	names := repo.Categories()
	for _, g := range links.GroupByCategory(repo.Links()) {
		if !slices.Contains(names, g.Category) {
			names = append(names, g.Category)
		}
	}
	return names
}

func requireCategory(repo *links.Repository, name string) error {
	if slices.Contains(categoryNames(repo), name) {
		return nil
	}
	return fmt.Errorf("no category named %q", name)
}

type CategoryLsCmd struct {
	Names bool `short:"n" help:"Output only category names (one per line)"`
}

func (cmd *CategoryLsCmd) Run(g *Globals) error {
	repo := g.App.Repo()
	names := categoryNames(repo)

	if cmd.Names {
		for _, n := range names {
			fmt.Fprintln(g.Out, n)
		}
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintln(g.Out, "No categories yet.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tLINKS")
	fmt.Fprintln(w, "--------\t-----")
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%d\n", n, repo.CountIn(n))
	}
	return w.Flush()
}

type CategoryRenameCmd struct {
	Old string `arg:"" help:"Current name" completion:"startpage category ls -n"`
	New string `arg:"" help:"New name"`
}

func (cmd *CategoryRenameCmd) Run(g *Globals) error {
	if err := requireCategory(g.App.Repo(), cmd.Old); err != nil {
		return err
	}

	err := g.App.Dispatch(g.ctx(), app.RenameCategory{Old: cmd.Old, New: cmd.New})
	switch {
	case errors.Is(err, links.ErrCategoryUnchanged):
		fmt.Fprintln(g.Out, "Nothing to change.")
		return nil
	case errors.Is(err, links.ErrCategoryExists):
		return errors.New("a category with that name already exists")
	case err != nil:
		return fmt.Errorf("failed to rename category %q: %w", cmd.Old, err)
	}

	fmt.Fprintf(g.Out, "Renamed: %s -> %s\n", cmd.Old, strings.TrimSpace(cmd.New))
	return nil
}

type CategoryRmCmd struct {
	Name string `arg:"" help:"Category to delete" completion:"startpage category ls -n"`
}

func (cmd *CategoryRmCmd) Run(g *Globals) error {
	repo := g.App.Repo()
	if err := requireCategory(repo, cmd.Name); err != nil {
		return err
	}
	n := repo.CountIn(cmd.Name)

	confirm, declined := g.gate()
	if err := g.App.DispatchWith(g.ctx(), app.DeleteCategory{Name: cmd.Name}, confirm); err != nil {
		return fmt.Errorf("failed to delete category %q: %w", cmd.Name, err)
	}
	if *declined {
		fmt.Fprintln(g.Out, "Cancelled.")
		return nil
	}

	fmt.Fprintf(g.Out, "Removed: %s (%d links)\n", cmd.Name, n)
	return nil
}
