package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
	"startpage/cmd/startpage/render"
	"startpage/internal/app"
	"startpage/internal/config"
	"startpage/internal/links"

	"github.com/rs/zerolog"
)

type Globals struct {
	Ctx     context.Context
	App     *app.App
	Out     io.Writer
	Render  render.Renderer
	RunCmd  func(name string, args ...string) error
	Confirm links.Confirm
	Config  *config.Config
	Log     zerolog.Logger
}

func (g *Globals) ctx() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Globals) runCmd(name string, args ...string) error {
	if g.RunCmd != nil {
		return g.RunCmd(name, args...)
	}
	return defaultRunCmd(name, args...)
}

// gate wraps the configured confirmation and records whether the user
// declined, since the app drops declined intents without an error.
func (g *Globals) gate() (links.Confirm, *bool) {
	declined := new(bool)
	confirm := g.Confirm
	if confirm == nil {
		confirm = links.AlwaysConfirm
	}
	return func(prompt string) bool {
		ok := confirm(prompt)
		*declined = !ok
		return ok
	}, declined
}

func defaultRunCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func browserCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
