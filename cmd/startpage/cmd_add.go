package main

import (
	"errors"
	"fmt"
	"slices"
	"startpage/internal/app"
	"startpage/internal/ui"
	"strings"

	"github.com/charmbracelet/huh"
)

type AddCmd struct {
	Title    string `arg:"" optional:"" help:"Link title"`
	URL      string `arg:"" optional:"" help:"Link URL"`
	Category string `short:"c" help:"Category (created if it does not exist)" completion:"startpage category ls -n"`
}

func (cmd *AddCmd) complete() bool {
	return strings.TrimSpace(cmd.Title) != "" &&
		strings.TrimSpace(cmd.URL) != "" &&
		strings.TrimSpace(cmd.Category) != ""
}

func (cmd *AddCmd) Run(g *Globals) error {
	if !cmd.complete() {
		if err := cmd.runForm(g.App.Repo().Categories()); err != nil {
			return handleFormError(err)
		}
	}

	isNew := !slices.Contains(g.App.Repo().Categories(), strings.TrimSpace(cmd.Category))
	err := g.App.Dispatch(g.ctx(), app.AddLink{Title: cmd.Title, URL: cmd.URL, Category: cmd.Category})
	if err != nil {
		return fmt.Errorf("failed to add link: %w", err)
	}

	var checks []string
	if isNew {
		checks = append(checks, "New category "+strings.TrimSpace(cmd.Category))
	}
	fmt.Fprint(g.Out, ui.RenderDone("Added "+strings.TrimSpace(cmd.Title), strings.TrimSpace(cmd.URL), checks))
	return nil
}

// runForm asks only for what the flags left out.
func (cmd *AddCmd) runForm(categories []string) error {
	selected := cmd.Category
	if selected == "" && len(categories) == 0 {
		selected = ui.NewCategoryOption
	}
	var typed string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&cmd.Title).Validate(ui.Required("Title")),
			huh.NewInput().Title("URL").Value(&cmd.URL).Validate(ui.Required("URL")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(ui.CategoryOptions(categories)...).
				Value(&selected),
		).WithHideFunc(func() bool { return cmd.Category != "" }),
		huh.NewGroup(
			huh.NewInput().Title("New category").Value(&typed).Validate(ui.Required("Category")),
		).WithHideFunc(func() bool { return selected != ui.NewCategoryOption }),
	).WithTheme(ui.WizardTheme())

	if err := form.Run(); err != nil {
		return err
	}
	if cmd.Category == "" {
		cmd.Category = ui.ResolveCategory(selected, typed)
	}
	return nil
}

func handleFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
