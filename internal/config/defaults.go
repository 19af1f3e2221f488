package config

import "time"

// Defaults used when a field is left empty.
const (
	DefaultServerURL    = "http://localhost:3000"
	DefaultWahlperiode  = 21
	DefaultTopN         = 30
	DefaultModel        = "de_core_news_lg"
	DefaultNLPURL       = "http://localhost:8090"
	DefaultNLPPort      = 8000
	DefaultWrappedPort  = 8001
	DefaultNotifySubj   = "plenar.export.completed"
	DefaultScheduleTick = 6 * time.Hour
)

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	s := &cfg.Source
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	if s.Retry.Backoff == "" {
		s.Retry.Backoff = BackoffExponential
	}
	if s.Retry.Initial <= 0 {
		s.Retry.Initial = time.Second
	}
	if s.Retry.Max <= 0 {
		s.Retry.Max = 10 * time.Second
	}
	if s.Retry.MaxRetries == 0 {
		s.Retry.MaxRetries = 2
	}

	d := &cfg.Data
	if d.DataDir == "" {
		d.DataDir = "./data_wp21"
	}
	if d.ResultsDir == "" {
		d.ResultsDir = "./results_wp21"
	}
	if d.WebDir == "" {
		d.WebDir = "./web/public"
	}

	if cfg.Analysis.Wahlperiode == 0 {
		cfg.Analysis.Wahlperiode = DefaultWahlperiode
	}
	if cfg.Analysis.TopN == 0 {
		cfg.Analysis.TopN = DefaultTopN
	}

	n := &cfg.NLP
	if n.Mode == "" {
		n.Mode = NLPModeAuto
	}
	if n.ServiceURL == "" {
		n.ServiceURL = DefaultNLPURL
	}
	if n.Model == "" {
		n.Model = DefaultModel
	}
	if n.Timeout <= 0 {
		n.Timeout = 30 * time.Second
	}

	if cfg.Servers.NLP.Host == "" {
		cfg.Servers.NLP.Host = "0.0.0.0"
	}
	if cfg.Servers.NLP.Port == 0 {
		cfg.Servers.NLP.Port = DefaultNLPPort
	}
	if cfg.Servers.Wrapped.Host == "" {
		cfg.Servers.Wrapped.Host = "0.0.0.0"
	}
	if cfg.Servers.Wrapped.Port == 0 {
		cfg.Servers.Wrapped.Port = DefaultWrappedPort
	}

	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubj
	}
	if cfg.Schedule.Interval <= 0 {
		cfg.Schedule.Interval = DefaultScheduleTick
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
