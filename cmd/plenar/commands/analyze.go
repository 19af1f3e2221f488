package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/config"
	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// comparisonRows caps the cross-party table.
const comparisonRows = 15

// AnalyzeCmd implements the 'analyze' command.
type AnalyzeCmd struct {
	DataDir      string   `arg:"" optional:"" name:"data-dir" help:"Data directory with speeches.json; without it protocols are fetched from the server" type:"path"`
	Parties      []string `short:"p" help:"Parties to analyze (default: all found)" sep:","`
	Wahlperiode  int      `short:"w" help:"Legislative period (default from config)"`
	MaxProtocols int      `short:"m" name:"max-protocols" help:"Protocols to fetch when no data directory is given, 0 for all" default:"5"`
	Output       string   `short:"o" name:"output-dir" help:"Write full_data.json, summary.json and CSV tables here" type:"path"`
	Top          int      `short:"n" name:"top" help:"Number of top words to show per type (default from config)"`
	Quiet        bool     `short:"q" help:"Suppress table output"`
}

func (a *AnalyzeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	parties := a.Parties
	if len(parties) == 0 {
		parties = cfg.Analysis.Parties
	}
	analyzer := newAnalyzer(ctx, cfg, nil)
	fmt.Fprintf(g.Out, "Bundestag word frequency analysis (tagger %s)\n", analyzer.Tagger().Name())

	var res pipeline.AnalyzeResult
	if a.DataDir != "" {
		store, err := openExisting(a.DataDir)
		if err != nil {
			return err
		}
		res, err = pipeline.Analyze(ctx, store, analyzer, pipeline.AnalyzeOptions{
			Parties:     parties,
			Wahlperiode: orDefault(a.Wahlperiode, cfg.Analysis.Wahlperiode),
			Logger:      g.Logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "Source: %s\n", store.SpeechesPath())
	} else {
		res, err = a.analyzeFromServer(ctx, g, cfg, analyzer, parties)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(g.Out, "Wahlperiode: %d\n", res.Wahlperiode)

	if !a.Quiet {
		top := orDefault(a.Top, cfg.Analysis.TopN)
		for _, r := range res.Results {
			printResult(g.Out, r, top)
		}
		if len(res.Results) > 1 {
			printComparison(g.Out, res.Results, top)
		}
	}

	if a.Output != "" {
		e, err := export.New(a.Output, export.Options{Logger: g.Logger})
		if err != nil {
			return err
		}
		if err := e.Raw(export.RawInput{Results: res.Results, Wahlperiode: res.Wahlperiode}); err != nil {
			return err
		}
		if _, err := e.Finish(); err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "Results exported to %s\n", a.Output)
	}
	return nil
}

// analyzeFromServer fetches protocols directly, parses them in memory and
// analyzes the formal speeches of each party.
func (a *AnalyzeCmd) analyzeFromServer(ctx context.Context, g *Global, cfg *config.Config, analyzer *analysis.Analyzer, parties []string) (pipeline.AnalyzeResult, error) {
	wp := orDefault(a.Wahlperiode, cfg.Analysis.Wahlperiode)
	res := pipeline.AnalyzeResult{Wahlperiode: wp}
	fmt.Fprintf(g.Out, "Server: %s\n", cfg.Source.ServerURL)

	src, err := g.Dial(ctx, cfg)
	if err != nil {
		return res, err
	}
	defer func() { _ = src.Close() }()

	refs, err := src.ProtocolIDs(ctx, wp, a.MaxProtocols)
	if err != nil {
		return res, classify(err, ferrors.CategorySource, "list protocols")
	}
	texts := map[string][]string{}
	for _, ref := range refs {
		p, err := src.GetProtocol(ctx, ref.ID)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			g.Logger.Warn("Skipping protocol", logfields.ProtocolID(fmt.Sprint(ref.ID)), logfields.Error(err))
			continue
		}
		if p == nil || p.FullText == "" {
			continue
		}
		for _, s := range protocol.ParseProtocol(p.FullText) {
			if s.Type != protocol.TypeRede || s.Party == "" {
				continue
			}
			if len(parties) > 0 && !slices.Contains(parties, s.Party) {
				continue
			}
			texts[s.Party] = append(texts[s.Party], s.Text)
		}
	}
	if len(texts) == 0 {
		return res, ferrors.NotFoundError("no speeches found").
			WithContext("wahlperiode", wp).
			WithContext("protocols", len(refs)).Build()
	}

	for _, party := range protocol.PartyOrder(slices.Collect(maps.Keys(texts)), parties) {
		r, err := analyzer.AnalyzeSpeeches(ctx, texts[party], party)
		if err != nil {
			return res, classify(err, ferrors.CategoryAnalysis, "analyze speeches")
		}
		res.Results = append(res.Results, r)
	}
	return res, nil
}

func printResult(w io.Writer, r *analysis.AnalysisResult, top int) {
	fmt.Fprintf(w, "\n%s: %d speeches, %d words, %d nouns, %d adjectives, %d verbs\n",
		r.Party, r.SpeechCount, r.TotalWords, r.TotalNouns, r.TotalAdjectives, r.TotalVerbs)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tNOUN\tPER 1000\tADJECTIVE\tPER 1000\tVERB\tPER 1000\t")
	nouns, adjs, verbs := r.TopNouns(top), r.TopAdjectives(top), r.TopVerbs(top)
	rows := max(len(nouns), len(adjs), len(verbs))
	for i := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", i+1, cell(r, nouns, i), cell(r, adjs, i), cell(r, verbs, i))
	}
	_ = tw.Flush()
}

func cell(r *analysis.AnalysisResult, entries []protocol.Entry, i int) string {
	if i >= len(entries) {
		return "\t"
	}
	return fmt.Sprintf("%s\t%.2f", entries[i].Key, r.Per1000(entries[i].Count))
}

func printComparison(w io.Writer, results []*analysis.AnalysisResult, top int) {
	rows := analysis.CompareParties(results, top, analysis.KindNoun)
	if len(rows) > comparisonRows {
		rows = rows[:comparisonRows]
	}
	fmt.Fprintln(w, "\nNouns with the largest difference between parties (per 1000 words)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"NOUN"}
	for _, r := range results {
		header = append(header, r.Party)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, c := range rows {
		line := []string{c.Word}
		for _, r := range results {
			line = append(line, fmt.Sprintf("%.2f", c.Per1000[r.Party]))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")
	}
	_ = tw.Flush()
}
