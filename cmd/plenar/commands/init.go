package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "plenar.yaml".
	if i.Output != "" {
		return RunInit(g, filepath.Join(i.Output, config.DefaultFile), i.Force)
	}
	return RunInit(g, orDefault(root.Config, config.DefaultFile), i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	fmt.Fprintln(g.Out, "Initializing plenar project")
	fmt.Fprintf(g.Out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Fprintln(g.Out, "Initialization failed")
		return ferrors.WrapError(err, ferrors.CategoryConfig, "write configuration").
			WithContext("path", configPath).UserAction().Build()
	}
	fmt.Fprintln(g.Out, "initialized successfully")
	return nil
}
