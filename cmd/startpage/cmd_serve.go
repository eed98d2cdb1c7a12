package main

import (
	"fmt"
	"os"
	"os/signal"
	"startpage/internal/server"
	"syscall"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (default from config)"`
}

func (cmd *ServeCmd) Run(g *Globals) error {
	addr := cmd.Addr
	if addr == "" && g.Config != nil {
		addr = g.Config.Addr
	}

	ctx, stop := signal.NotifyContext(g.ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(g.Out, "Serving start page on http://%s\n", addr)
	return server.New(g.App, g.Log).ListenAndServe(ctx, addr)
}

