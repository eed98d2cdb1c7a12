package main

import (
	"errors"
	"fmt"
	"startpage/internal/app"
	"startpage/internal/prefs"
	"startpage/internal/ui"
	"strings"
	"text/tabwriter"
)

type ThemeCmd struct {
	Ls     ThemeLsCmd     `cmd:"" default:"1" help:"List built-in themes"`
	Select ThemeSelectCmd `cmd:"" help:"Switch to a built-in theme"`
	Set    ThemeSetCmd    `cmd:"" help:"Override one surface color"`
	Save   ThemeSaveCmd   `cmd:"" help:"Save the current colors as the custom theme"`
}

type ThemeLsCmd struct{}

func (cmd *ThemeLsCmd) Run(g *Globals) error {
	current := g.App.Prefs().CurrentTheme(g.ctx()).Name

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	for _, t := range prefs.Themes() {
		marker := " "
		if t.Name == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, t.Name, strings.Join(t.Palette.Colors(), " "))
	}
	if custom, ok := g.App.Prefs().CustomTheme(g.ctx()); ok {
		colors := make([]string, 0, len(prefs.Surfaces))
		for _, s := range prefs.Surfaces {
			colors = append(colors, custom.Colors[string(s)])
		}
		fmt.Fprintf(w, "  %s\t%s\n", custom.Name, strings.Join(colors, " "))
	}
	return w.Flush()
}

type ThemeSelectCmd struct {
	Name string `arg:"" help:"Theme name"`
}

func (cmd *ThemeSelectCmd) Run(g *Globals) error {
	err := g.App.Dispatch(g.ctx(), app.SelectTheme{Name: cmd.Name})
	if errors.Is(err, prefs.ErrUnknownTheme) {
		names := make([]string, 0, len(prefs.Themes()))
		for _, t := range prefs.Themes() {
			names = append(names, t.Name)
		}
		return fmt.Errorf("%w (choose from: %s)", err, strings.Join(names, ", "))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Theme: %s\n", g.App.Prefs().CurrentTheme(g.ctx()).Name)
	return nil
}

type ThemeSetCmd struct {
	Surface string `arg:"" help:"Surface to color (page-bg, card-bg, header-color, text-color)"`
	Color   string `arg:"" help:"CSS color value, e.g. #1a1a2e"`
}

func (cmd *ThemeSetCmd) Run(g *Globals) error {
	if err := g.App.Dispatch(g.ctx(), app.SetSurface{Surface: cmd.Surface, Color: cmd.Color}); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Set %s to %s\n", cmd.Surface, strings.TrimSpace(cmd.Color))
	return nil
}

type ThemeSaveCmd struct{}

func (cmd *ThemeSaveCmd) Run(g *Globals) error {
	if err := g.App.Dispatch(g.ctx(), app.SaveCustomTheme{}); err != nil {
		return err
	}
	custom, _ := g.App.Prefs().CustomTheme(g.ctx())

	checks := make([]string, 0, len(prefs.Surfaces))
	for _, s := range prefs.Surfaces {
		checks = append(checks, fmt.Sprintf("%s %s", s, custom.Colors[string(s)]))
	}
	fmt.Fprint(g.Out, ui.RenderDone("Saved "+custom.Name, "", checks))
	return nil
}
