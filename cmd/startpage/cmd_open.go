package main

import "fmt"

type OpenCmd struct {
	Query string `arg:"" help:"Link title or partial match" completion:"startpage ls -n"`
}

func (cmd *OpenCmd) Run(g *Globals) error {
	link, err := findLink(g.App.Repo(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.runCmd(browserCommand(), link.URL); err != nil {
		return fmt.Errorf("failed to open %s: %w", link.URL, err)
	}
	return nil
}
