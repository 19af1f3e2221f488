package commands

import (
	"errors"
	"io/fs"
	"path/filepath"

	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// WrappedCmd implements the 'wrapped' command.
type WrappedCmd struct {
	Dir     string   `short:"d" help:"Export directory with wrapped.json (default from config)" type:"path"`
	Party   []string `short:"p" help:"Only show these parties (repeatable)"`
	Section string   `short:"s" enum:"all,party,speaker,drama,topic,tone" default:"all" help:"Section to display (${enum})"`
	NoEmoji bool     `name:"no-emoji" help:"Disable emoji output"`
}

func (c *WrappedCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	path := filepath.Join(orDefault(c.Dir, cfg.Data.WebDir), export.WrappedFile)
	w, err := wrapped.ReadWrapped(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ferrors.NotFoundError("wrapped.json not found, run export-web first").
			WithContext("file", path).UserAction().Build()
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryExport, "read wrapped.json").
			WithContext("file", path).Build()
	}
	return wrapped.Render(g.Out, w, wrapped.RenderOptions{
		Parties: c.Party,
		Section: c.Section,
		NoEmoji: c.NoEmoji,
	})
}
