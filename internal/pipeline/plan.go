package pipeline

import (
	"git.home.luguber.info/inful/plenar/internal/config"
)

// Plan is the immutable input of a run, derived from config and command
// line overrides.
type Plan struct {
	DataDir    string
	ResultsDir string
	WebDir     string
	Server     string

	Wahlperiode  int
	MaxProtocols int
	Parties      []string

	GenderMapping string
	UnknownNames  string

	SkipDownload bool
	SkipSpeeches bool // omit speeches_db.json from the web export
}

// PlanBuilder constructs a Plan.
type PlanBuilder struct {
	plan Plan
}

// NewPlanBuilder starts from the configured directories and analysis bounds.
func NewPlanBuilder(cfg *config.Config) *PlanBuilder {
	return &PlanBuilder{plan: Plan{
		DataDir:       cfg.Data.DataDir,
		ResultsDir:    cfg.Data.ResultsDir,
		WebDir:        cfg.Data.WebDir,
		Server:        cfg.Source.ServerURL,
		Wahlperiode:   cfg.Analysis.Wahlperiode,
		MaxProtocols:  cfg.Analysis.MaxProtocols,
		Parties:       cfg.Analysis.Parties,
		GenderMapping: cfg.Data.GenderMapping,
		UnknownNames:  cfg.Data.UnknownNames,
	}}
}

// WithDataDir overrides the data directory when dir is set.
func (b *PlanBuilder) WithDataDir(dir string) *PlanBuilder {
	if dir != "" {
		b.plan.DataDir = dir
	}
	return b
}

// WithOutput overrides the results and web directories when set.
func (b *PlanBuilder) WithOutput(resultsDir, webDir string) *PlanBuilder {
	if resultsDir != "" {
		b.plan.ResultsDir = resultsDir
	}
	if webDir != "" {
		b.plan.WebDir = webDir
	}
	return b
}

// WithServer overrides the MCP server URL when set.
func (b *PlanBuilder) WithServer(url string) *PlanBuilder {
	if url != "" {
		b.plan.Server = url
	}
	return b
}

// WithWahlperiode overrides the legislative period when positive.
func (b *PlanBuilder) WithWahlperiode(wp int) *PlanBuilder {
	if wp > 0 {
		b.plan.Wahlperiode = wp
	}
	return b
}

// WithMaxProtocols overrides the protocol limit when non-negative.
func (b *PlanBuilder) WithMaxProtocols(n int) *PlanBuilder {
	if n >= 0 {
		b.plan.MaxProtocols = n
	}
	return b
}

// WithParties restricts the analysis to parties when any are given.
func (b *PlanBuilder) WithParties(parties []string) *PlanBuilder {
	if len(parties) > 0 {
		b.plan.Parties = parties
	}
	return b
}

// WithSkipDownload runs on the protocols already in the data directory.
func (b *PlanBuilder) WithSkipDownload(skip bool) *PlanBuilder {
	b.plan.SkipDownload = skip
	return b
}

// WithSkipSpeeches omits speeches_db.json from the web export.
func (b *PlanBuilder) WithSkipSpeeches(skip bool) *PlanBuilder {
	b.plan.SkipSpeeches = skip
	return b
}

// Build returns the constructed Plan.
func (b *PlanBuilder) Build() *Plan {
	p := b.plan
	return &p
}
