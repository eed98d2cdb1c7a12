package main

import "fmt"

type ShowCmd struct {
	Query string `arg:"" help:"Link title or partial match" completion:"startpage ls -n"`
	URL   bool   `help:"Output only the URL (for scripting)"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	link, err := findLink(g.App.Repo(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if cmd.URL {
		fmt.Fprintln(g.Out, link.URL)
		return nil
	}

	fmt.Fprintf(g.Out, "Title:    %s\n", link.Title)
	fmt.Fprintf(g.Out, "URL:      %s\n", link.URL)
	fmt.Fprintf(g.Out, "Category: %s\n", link.Category)
	return nil
}
