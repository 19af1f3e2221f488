package commands

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/plenar/internal/datastore"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
)

// ParseCmd implements the 'parse' command.
type ParseCmd struct {
	DataDir string `arg:"" name:"data-dir" help:"Data directory with downloaded protocols" type:"path"`
}

func (p *ParseCmd) Run(g *Global, root *CLI) error {
	if _, err := root.load(g); err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	store, err := openExisting(p.DataDir)
	if err != nil {
		return err
	}
	res, err := pipeline.Parse(ctx, store, g.Logger, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Parsed %d speeches from %d protocols into %s\n", res.Speeches, res.Protocols, store.SpeechesPath())
	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTY\tSPEECHES")
	for _, party := range slices.Sorted(maps.Keys(res.ByParty)) {
		fmt.Fprintf(w, "%s\t%d\n", party, res.ByParty[party])
	}
	return w.Flush()
}

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	DataDir string `arg:"" name:"data-dir" help:"Data directory" type:"path"`
}

func (s *StatusCmd) Run(g *Global, root *CLI) error {
	if _, err := root.load(g); err != nil {
		return err
	}
	store, err := openExisting(s.DataDir)
	if err != nil {
		return err
	}
	st, err := store.Status()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "read status").
			WithContext("dir", s.DataDir).Build()
	}
	if !st.Started {
		fmt.Fprintf(g.Out, "No download state in %s, run 'plenar download %s' first\n", s.DataDir, s.DataDir)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Data directory\t%s\n", s.DataDir)
	fmt.Fprintf(w, "Wahlperiode\t%d\n", st.Wahlperiode)
	fmt.Fprintf(w, "Server\t%s\n", st.Server)
	fmt.Fprintf(w, "Protocols\t%d\n", st.TotalProtocols)
	fmt.Fprintf(w, "Downloaded\t%d\n", st.Downloaded)
	fmt.Fprintf(w, "Pending\t%d\n", st.Pending)
	fmt.Fprintf(w, "Failed\t%d\n", st.Failed)
	fmt.Fprintf(w, "Parsed\t%s\n", yesNo(st.Parsed))
	fmt.Fprintf(w, "Updated\t%s\n", st.UpdatedAt.Local().Format(time.DateTime))
	if len(st.SpeechesByParty) > 0 {
		fmt.Fprintln(w, "\t")
		fmt.Fprintln(w, "PARTY\tSPEECHES")
		total := 0
		for _, party := range slices.Sorted(maps.Keys(st.SpeechesByParty)) {
			fmt.Fprintf(w, "%s\t%d\n", party, st.SpeechesByParty[party])
			total += st.SpeechesByParty[party]
		}
		fmt.Fprintf(w, "total\t%d\n", total)
	}
	return w.Flush()
}

// openExisting opens a data directory that must already exist.
func openExisting(dir string) (*datastore.Store, error) {
	if !dirExists(dir) {
		return nil, ferrors.NotFoundError("data directory not found").
			WithContext("dir", dir).UserAction().Build()
	}
	store, err := datastore.Open(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "open data directory").
			WithContext("dir", dir).Build()
	}
	return store, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
