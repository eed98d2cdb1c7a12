package main

import (
	_ "embed"
	"fmt"
	"startpage/internal/util"
)

var (
	//go:embed completions/startpage.zsh
	zshCompletion []byte
	//go:embed completions/startpage.bash
	bashCompletion []byte
	//go:embed completions/startpage.fish
	fishCompletion []byte
)

type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

func (cmd *CompletionCmd) Run(g *Globals) error {
	switch cmd.Shell {
	case "zsh":
		assert.Success(g.Out.Write(zshCompletion))
	case "bash":
		assert.Success(g.Out.Write(bashCompletion))
	case "fish":
		assert.Success(g.Out.Write(fishCompletion))
	default:
		return fmt.Errorf("unsupported shell: %s", cmd.Shell)
	}
	return nil
}
