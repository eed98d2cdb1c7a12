package main

import (
	"fmt"
	"startpage/internal/app"
)

type SidebarCmd struct{}

func (cmd *SidebarCmd) Run(g *Globals) error {
	if err := g.App.Dispatch(g.ctx(), app.ToggleSidebar{}); err != nil {
		return err
	}
	if g.App.Prefs().SidebarCollapsed(g.ctx()) {
		fmt.Fprintln(g.Out, "Sidebar collapsed.")
	} else {
		fmt.Fprintln(g.Out, "Sidebar expanded.")
	}
	return nil
}
