package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/plenar/internal/config"
	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// ExportFlags are shared by the export commands.
type ExportFlags struct {
	DataDir    string `arg:"" name:"data-dir" help:"Data directory with speeches.json" type:"path"`
	ResultsDir string `short:"r" name:"results-dir" help:"Analyze output with full_data.json (default from config)" type:"path"`
	Output     string `short:"o" name:"output" help:"Export directory (default from config)" type:"path"`
}

// exportJob is the state of one export command run.
type exportJob struct {
	g   *Global
	cfg *config.Config
	dir string
	d   *wrapped.Data
	e   *export.Exporter
}

// begin loads the wrapped data and prepares the exporter.
func (f ExportFlags) begin(g *Global, root *CLI) (*exportJob, error) {
	cfg, err := root.load(g)
	if err != nil {
		return nil, err
	}
	if !dirExists(f.DataDir) {
		return nil, ferrors.NotFoundError("data directory not found").
			WithContext("dir", f.DataDir).UserAction().Build()
	}
	d, err := wrapped.Load(wrapped.LoadOptions{
		DataDir:       f.DataDir,
		ResultsDir:    orDefault(f.ResultsDir, cfg.Data.ResultsDir),
		Logger:        g.Logger,
		GenderMapping: cfg.Data.GenderMapping,
		UnknownNames:  cfg.Data.UnknownNames,
	})
	if err != nil {
		return nil, classify(err, ferrors.CategoryExport, "load wrapped data")
	}
	dir := orDefault(f.Output, cfg.Data.WebDir)
	e, err := export.New(dir, export.Options{Logger: g.Logger})
	if err != nil {
		return nil, err
	}
	return &exportJob{g: g, cfg: cfg, dir: dir, d: d, e: e}, nil
}

// finish writes the manifest and reports the written file.
func (j *exportJob) finish(what string) error {
	m, err := j.e.Finish()
	if err != nil {
		return err
	}
	fmt.Fprintf(j.g.Out, "Exported %s to %s (run %s, %d files in manifest)\n", what, j.dir, m.RunID, len(m.Files))
	return nil
}

// ExportWebCmd implements the 'export-web' command.
type ExportWebCmd struct {
	ExportFlags `embed:""`
}

func (c *ExportWebCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	if err := j.e.Wrapped(j.d); err != nil {
		return err
	}
	return j.finish(export.WrappedFile)
}

// ExportSpeakersCmd implements the 'export-speakers' command.
type ExportSpeakersCmd struct {
	ExportFlags `embed:""`
}

func (c *ExportSpeakersCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()
	res, err := j.e.Speakers(ctx, j.d)
	if err != nil {
		return err
	}
	if res.StaleRemoved > 0 {
		fmt.Fprintf(g.Out, "Removed %d stale speaker profiles\n", res.StaleRemoved)
	}
	return j.finish(fmt.Sprintf("%d speaker profiles", res.Exported))
}

// ExportSpeechesCmd implements the 'export-speeches' command.
type ExportSpeechesCmd struct {
	ExportFlags `embed:""`
}

func (c *ExportSpeechesCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	if err := j.e.SpeechDB(j.d.Speeches); err != nil {
		return err
	}
	return j.finish(fmt.Sprintf("%d speeches", len(j.d.Speeches)))
}

// ExportInterruptionsCmd implements the 'export-interruptions' command.
type ExportInterruptionsCmd struct {
	ExportFlags `embed:""`
}

func (c *ExportInterruptionsCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	if err := j.e.Interruptions(j.d); err != nil {
		return err
	}
	return j.finish(export.InterruptersFile + " and " + export.InterruptedFile)
}

// ExportNeutralTextsCmd implements the 'export-neutral-texts' command.
type ExportNeutralTextsCmd struct {
	ExportFlags `embed:""`
}

func (c *ExportNeutralTextsCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	if err := j.e.NeutralTexts(j.d); err != nil {
		return err
	}
	return j.finish(export.NeutralTextsFile)
}

// ExportAllCmd implements the 'export-all' command.
type ExportAllCmd struct {
	ExportFlags  `embed:""`
	SkipSpeeches bool `name:"skip-speeches" help:"Do not write speeches_db.json"`
}

func (c *ExportAllCmd) Run(g *Global, root *CLI) error {
	j, err := c.begin(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	sum, err := j.e.All(ctx, j.d, c.SkipSpeeches)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Exported %d speaker profiles and %d files to %s (run %s)\n",
		sum.Speakers.Exported, len(sum.Manifest.Files), j.dir, sum.RunID)

	bus, closeBus, err := newBus(j.cfg, g.Logger)
	if err != nil {
		g.Logger.Warn("Export notification disabled", logfields.Error(err))
		return nil
	}
	defer closeBus()
	if bus != nil {
		ev := pipeline.ExportCompleted{
			RunID:       sum.RunID,
			ContentHash: sum.ContentHash,
			Dir:         j.dir,
			Files:       len(sum.Manifest.Files),
			Speakers:    sum.Speakers.Exported,
			Wahlperiode: j.d.Meta.Wahlperiode,
			GeneratedAt: time.Now().UTC(),
		}
		if err := bus.Publish(context.WithoutCancel(ctx), ev); err != nil {
			g.Logger.Warn("Export notification failed", logfields.Error(err))
		}
	}
	return nil
}
