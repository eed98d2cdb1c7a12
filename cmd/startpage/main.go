package main

import (
	"context"
	"fmt"
	"os"
	"startpage/cmd/startpage/render"
	"startpage/internal/app"
	"startpage/internal/config"
	"startpage/internal/kv"
	"startpage/internal/links"
	"startpage/internal/logging"
	"startpage/internal/ui"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Add        AddCmd        `cmd:"" aliases:"a" help:"Add a link"`
	List       ListCmd       `cmd:"" aliases:"ls" default:"withargs" help:"List links grouped by category"`
	Show       ShowCmd       `cmd:"" help:"Show link details"`
	Open       OpenCmd       `cmd:"" aliases:"o" help:"Open a link in the browser"`
	Edit       EditCmd       `cmd:"" aliases:"e" help:"Edit a link"`
	Mv         MvCmd         `cmd:"" help:"Move a link to a category or position"`
	Rm         RmCmd         `cmd:"" help:"Delete a link"`
	Category   CategoryCmd   `cmd:"" aliases:"cat" help:"Manage categories"`
	Theme      ThemeCmd      `cmd:"" help:"Manage themes and colors"`
	Sidebar    SidebarCmd    `cmd:"" help:"Toggle the page sidebar"`
	Export     ExportCmd     `cmd:"" help:"Export all data as JSON"`
	Import     ImportCmd     `cmd:"" help:"Import data from a JSON export"`
	Reset      ResetCmd      `cmd:"" help:"Delete all data"`
	Serve      ServeCmd      `cmd:"" help:"Serve the start page over HTTP"`
	Info       InfoCmd       `cmd:"" help:"Show where data is stored"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`

	StorePath string `name:"store" short:"s" help:"Path to the data store" type:"path"`
	Backend   string `help:"Storage backend (yaml, sqlite, memory)"`
	LogLevel  string `help:"Log level (trace, debug, info, warn, error, off)"`
	Yes       bool   `short:"y" help:"Do not ask for confirmation"`

	store *kv.SafeStore `kong:"-"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Backend != "" {
		cfg.UseBackend(c.Backend)
	}
	if c.StorePath != "" {
		cfg.StorePath = c.StorePath
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	backend, err := kv.OpenBackend(kv.Kind(cfg.Backend), cfg.StorePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.StorePath).Msg("storage unavailable, keeping data in memory")
		backend = kv.NewMemoryBackend()
	}
	c.store = kv.NewSafeStore(backend, log)

	confirm := links.Confirm(ui.Confirm)
	if c.Yes {
		confirm = links.AlwaysConfirm
	}

	globals := &Globals{
		App:     app.New(context.Background(), c.store, log, app.WithConfirm(confirm)),
		Out:     os.Stdout,
		Render:  render.NewLipglossRendererAuto(os.Stdout),
		Confirm: confirm,
		Config:  cfg,
		Log:     log,
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("startpage"),
		kong.Description("Bookmark start page with categories and themes"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if cli.store != nil {
		cli.store.Close()
	}
	ctx.FatalIfErrorf(err)
}
