package main

import (
	"fmt"
	"startpage/internal/app"
	"startpage/internal/backup"
	"startpage/internal/config"
)

type ExportCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Write to this file instead of stdout"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	b := g.App.Export(g.ctx())

	if cmd.File == "" {
		data, err := backup.Encode(b)
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		_, err = fmt.Fprintln(g.Out, string(data))
		return err
	}

	if err := backup.WriteFile(cmd.File, b); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(g.Out, "Exported %d keys to %s\n", len(b.Data), config.ShortenPath(cmd.File))
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON export to import"`
}

func (cmd *ImportCmd) Run(g *Globals) error {
	b, err := backup.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}
	if err := g.App.Dispatch(g.ctx(), app.Import{Bundle: b}); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	repo := g.App.Repo()
	fmt.Fprintf(g.Out, "Imported %d keys: %d links in %d categories\n",
		len(b.Data), repo.Count(), len(categoryNames(repo)))
	return nil
}

type ResetCmd struct{}

func (cmd *ResetCmd) Run(g *Globals) error {
	confirm, declined := g.gate()
	if err := g.App.DispatchWith(g.ctx(), app.Reset{}, confirm); err != nil {
		return err
	}
	if *declined {
		fmt.Fprintln(g.Out, "Cancelled.")
		return nil
	}
	fmt.Fprintln(g.Out, "All data deleted.")
	return nil
}
