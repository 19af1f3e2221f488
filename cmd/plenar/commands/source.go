package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/plenar/internal/datastore"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
	"git.home.luguber.info/inful/plenar/internal/source"
)

// TestCmd implements the 'test' command.
type TestCmd struct {
	Wahlperiode int `short:"w" help:"Legislative period to search (default from config)"`
}

func (t *TestCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	fmt.Fprintf(g.Out, "Testing connection to %s\n", cfg.Source.ServerURL)
	src, err := g.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	ok, err := src.TestConnection(ctx, orDefault(t.Wahlperiode, cfg.Analysis.Wahlperiode))
	if err != nil {
		return classify(err, ferrors.CategorySource, "connection test failed")
	}
	if !ok {
		return ferrors.SourceError("connection test failed: server returned no protocols").
			WithContext("server", cfg.Source.ServerURL).Build()
	}
	fmt.Fprintln(g.Out, "Connection successful")
	return nil
}

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query       string `arg:"" help:"Search query"`
	Wahlperiode int    `short:"w" help:"Legislative period, 0 for all (default from config)" default:"-1"`
	Limit       int    `short:"l" help:"Maximum number of hits" default:"10"`
}

// excerptRunes bounds the speech excerpt printed per hit.
const excerptRunes = 120

func (s *SearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	if s.Limit < 1 {
		return ferrors.ValidationError("limit must be positive").
			WithContext("limit", s.Limit).UserAction().Build()
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	src, err := g.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	wp := cfg.Analysis.Wahlperiode
	if s.Wahlperiode >= 0 {
		wp = s.Wahlperiode
	}
	hits, err := src.SearchSpeeches(ctx, s.Query, wp, s.Limit)
	if err != nil {
		return classify(err, ferrors.CategorySource, "search speeches")
	}
	if len(hits) == 0 {
		fmt.Fprintf(g.Out, "No speeches found for %q\n", s.Query)
		return nil
	}
	tw := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tDATE\tSPEAKER\tPARTY\tEXCERPT")
	for _, h := range hits {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\n", h.Score, h.Date, h.Speaker, h.Party, excerpt(h.Text, excerptRunes))
	}
	return tw.Flush()
}

func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

// DownloadCmd implements the 'download' command.
type DownloadCmd struct {
	DataDir      string `arg:"" name:"data-dir" help:"Directory for protocols and state" type:"path"`
	Wahlperiode  int    `short:"w" help:"Legislative period (default from config)"`
	MaxProtocols int    `short:"m" name:"max-protocols" help:"Maximum number of protocols, 0 for all (default from config)" default:"-1"`
}

func (d *DownloadCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	store, err := datastore.Open(d.DataDir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "open data directory").
			WithContext("dir", d.DataDir).Build()
	}
	src, err := g.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	maxProtocols := cfg.Analysis.MaxProtocols
	if d.MaxProtocols >= 0 {
		maxProtocols = d.MaxProtocols
	}
	res, err := pipeline.Download(ctx, store, src, pipeline.DownloadOptions{
		Wahlperiode:  orDefault(d.Wahlperiode, cfg.Analysis.Wahlperiode),
		MaxProtocols: maxProtocols,
		Server:       cfg.Source.ServerURL,
		Logger:       g.Logger,
	})
	if err != nil {
		return err
	}

	if res.Attempted == 0 {
		fmt.Fprintf(g.Out, "All %d protocols of Wahlperiode %d already downloaded\n", res.Total, res.Wahlperiode)
		return nil
	}
	fmt.Fprintf(g.Out, "Downloaded %d/%d protocols of Wahlperiode %d into %s\n",
		res.Downloaded, res.Total, res.Wahlperiode, d.DataDir)
	if res.Failed > 0 {
		fmt.Fprintf(g.Out, "%d protocols failed, run download again to retry them\n", res.Failed)
	}
	return nil
}

// ImportCmd implements the 'import' command.
type ImportCmd struct {
	DataDir     string   `arg:"" name:"data-dir" help:"Data directory to import into" type:"path"`
	Files       []string `arg:"" name:"files" help:"Protocol files named after their id, e.g. 5713.html" type:"existingfile"`
	Wahlperiode int      `short:"w" help:"Legislative period recorded for a new data directory (default from config)"`
}

func (i *ImportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	store, err := datastore.Open(i.DataDir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "open data directory").
			WithContext("dir", i.DataDir).Build()
	}

	st, err := store.LoadState()
	if errors.Is(err, datastore.ErrNoState) {
		st, err = store.InitState(orDefault(i.Wahlperiode, cfg.Analysis.Wahlperiode), "import", []int{})
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "read download state").
			WithContext("dir", i.DataDir).Build()
	}

	// New protocols invalidate an earlier parse.
	st.Parsed = false
	for _, path := range i.Files {
		p, err := source.ImportFile(path)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "import protocol").
				WithContext("file", path).UserAction().Build()
		}
		if p.Wahlperiode == 0 {
			p.Wahlperiode = st.Wahlperiode
		}
		if err := store.SaveProtocol(p); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write protocol").
				WithContext("file", path).Build()
		}
		store.AddProtocolIDs(st, int(p.ID))
		if err := store.MarkDownloaded(st, int(p.ID)); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write download state").Build()
		}
		g.Logger.Debug("Imported protocol", logfields.File(path), logfields.ProtocolID(fmt.Sprint(p.ID)))
	}
	fmt.Fprintf(g.Out, "Imported %d protocols into %s\n", len(i.Files), i.DataDir)
	return nil
}
