package config

import (
	"errors"
	"strings"
)

// normalize case-folds enumerations and trims free-form strings. Unknown enum
// spellings are collected and reported together.
func normalize(cfg *Config) error {
	var errs []error

	if cfg.Source.Retry.Backoff != "" {
		v, err := backoffNormalizer.Parse("source.retry.backoff", string(cfg.Source.Retry.Backoff))
		errs = append(errs, err)
		cfg.Source.Retry.Backoff = v
	}
	if cfg.NLP.Mode != "" {
		v, err := nlpModeNormalizer.Parse("nlp.mode", string(cfg.NLP.Mode))
		errs = append(errs, err)
		cfg.NLP.Mode = v
	}
	if cfg.Logging.Level != "" {
		v, err := logLevelNormalizer.Parse("logging.level", string(cfg.Logging.Level))
		errs = append(errs, err)
		cfg.Logging.Level = v
	}
	if cfg.Logging.Format != "" {
		v, err := logFormatNormalizer.Parse("logging.format", string(cfg.Logging.Format))
		errs = append(errs, err)
		cfg.Logging.Format = v
	}

	cfg.Source.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.Source.ServerURL), "/")
	cfg.NLP.ServiceURL = strings.TrimRight(strings.TrimSpace(cfg.NLP.ServiceURL), "/")
	cfg.Notify.NATSURL = strings.TrimSpace(cfg.Notify.NATSURL)

	parties := cfg.Analysis.Parties[:0]
	for _, p := range cfg.Analysis.Parties {
		if p = strings.TrimSpace(p); p != "" {
			parties = append(parties, p)
		}
	}
	cfg.Analysis.Parties = parties

	return errors.Join(errs...)
}
