package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/nlp"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
	"git.home.luguber.info/inful/plenar/internal/retry"
	"git.home.luguber.info/inful/plenar/internal/source"
)

// Source is what the commands need from the MCP server. *source.Bundestag
// implements it.
type Source interface {
	pipeline.ProtocolSource
	TestConnection(ctx context.Context, wahlperiode int) (bool, error)
	SearchSpeeches(ctx context.Context, query string, wahlperiode, limit int) ([]source.SpeechHit, error)
	Close() error
}

var _ Source = (*source.Bundestag)(nil)

// Dialer opens a Source for the configured server.
type Dialer func(ctx context.Context, cfg *config.Config) (Source, error)

// Global is shared state passed to every command's Run.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	Dial   Dialer

	// Context is the parent of every command context. Interrupts cancel it.
	Context context.Context

	logOut io.Writer
}

// NewGlobal wires stdout, stderr logging and the MCP dialer.
func NewGlobal() *Global {
	return &Global{
		Logger:  slog.Default(),
		Out:     os.Stdout,
		Dial:    DialBundestag,
		Context: context.Background(),
		logOut:  os.Stderr,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./plenar.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Server  string           `help:"MCP server URL (default from config, http://localhost:3000)" env:"PLENAR_SERVER"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Test     TestCmd     `cmd:"" help:"Check the connection to the MCP server"`
	Search   SearchCmd   `cmd:"" help:"Search speeches on the MCP server"`
	Download DownloadCmd `cmd:"" help:"Download Plenarprotokolle into a data directory (resumable)"`
	Import   ImportCmd   `cmd:"" help:"Import locally saved protocol files (HTML or text)"`
	Parse    ParseCmd    `cmd:"" help:"Parse downloaded protocols into speeches.json"`
	Status   StatusCmd   `cmd:"" help:"Show the download and parse state of a data directory"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Analyze word frequencies per party"`
	Wrapped  WrappedCmd  `cmd:"" help:"Show the wrapped export in the terminal"`

	ExportWeb           ExportWebCmd           `cmd:"" name:"export-web" help:"Write wrapped.json"`
	ExportSpeakers      ExportSpeakersCmd      `cmd:"" name:"export-speakers" help:"Write the speaker index and one profile per speaker"`
	ExportSpeeches      ExportSpeechesCmd      `cmd:"" name:"export-speeches" help:"Write speeches_db.json"`
	ExportInterruptions ExportInterruptionsCmd `cmd:"" name:"export-interruptions" help:"Write the Zwischenruf rankings"`
	ExportNeutralTexts  ExportNeutralTextsCmd  `cmd:"" name:"export-neutral-texts" help:"Write neutral interjections"`
	ExportAll           ExportAllCmd           `cmd:"" name:"export-all" help:"Write every web export and the manifest"`

	Run          RunCmd          `cmd:"" help:"Download, parse, analyze and export in one go"`
	Watch        WatchCmd        `cmd:"" help:"Run the pipeline on a schedule"`
	Serve        ServeCmd        `cmd:"" help:"Serve the NLP API"`
	ServeWrapped ServeWrappedCmd `cmd:"" name:"serve-wrapped" help:"Serve the read-only Wrapped API from an export directory"`
	Init         InitCmd         `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// load reads the configuration, applies global flag overrides and
// reconfigures logging from its logging section.
func (c *CLI) load(g *Global) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load configuration").
			WithContext("path", c.Config).UserAction().Build()
	}
	if c.Server != "" {
		cfg.Source.ServerURL = c.Server
	}
	out := g.logOut
	if out == nil {
		out = os.Stderr
	}
	g.Logger = NewLogger(cfg.Logging, c.Verbose, out)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// NewLogger builds the slog logger for a logging section. Verbose forces
// debug level.
func NewLogger(lc config.LoggingConfig, verbose bool, w io.Writer) *slog.Logger {
	level := config.NormalizeLogLevel(string(lc.Level)).SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(string(lc.Format)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DialBundestag connects to the configured MCP server.
func DialBundestag(ctx context.Context, cfg *config.Config) (Source, error) {
	c, err := source.Dial(ctx, cfg.Source.ServerURL,
		source.WithTimeout(cfg.Source.Timeout),
		source.WithRetryPolicy(retry.FromConfig(cfg.Source.Retry)))
	if err != nil {
		return nil, err
	}
	return source.NewBundestag(c), nil
}

func (g *Global) signalContext() (context.Context, context.CancelFunc) {
	parent := g.Context
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newAnalyzer(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) *analysis.Analyzer {
	tagger := nlp.New(ctx, cfg.NLP, retry.FromConfig(cfg.Source.Retry), recorder)
	return analysis.NewAnalyzer(tagger, nil)
}

// classify keeps classified errors and wraps everything else.
func classify(err error, category ferrors.ErrorCategory, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}
	return ferrors.WrapError(err, category, msg).Build()
}

func dirExists(dir string) bool {
	fi, err := os.Stat(dir)
	return err == nil && fi.IsDir()
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
