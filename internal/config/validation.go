package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	v := &validator{cfg: cfg}
	for _, step := range []func() error{v.source, v.analysis, v.nlp, v.servers, v.schedule} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	cfg *Config
}

func (v *validator) source() error {
	if err := validateURL("source.server_url", v.cfg.Source.ServerURL); err != nil {
		return err
	}
	r := v.cfg.Source.Retry
	if r.MaxRetries < 0 {
		return errors.New("source.retry.max_retries cannot be negative")
	}
	if r.Initial > r.Max {
		return fmt.Errorf("source.retry.initial (%s) exceeds source.retry.max (%s)", r.Initial, r.Max)
	}
	return nil
}

func (v *validator) analysis() error {
	a := v.cfg.Analysis
	if a.Wahlperiode < 1 || a.Wahlperiode > 30 {
		return fmt.Errorf("analysis.wahlperiode out of range: %d", a.Wahlperiode)
	}
	if a.MaxProtocols < 0 {
		return errors.New("analysis.max_protocols cannot be negative")
	}
	if a.TopN < 1 || a.TopN > 500 {
		return fmt.Errorf("analysis.top_n must be between 1 and 500, got %d", a.TopN)
	}
	return nil
}

func (v *validator) nlp() error {
	if v.cfg.NLP.Mode == NLPModeLexicon {
		return nil
	}
	return validateURL("nlp.service_url", v.cfg.NLP.ServiceURL)
}

func (v *validator) servers() error {
	for name, s := range map[string]ServerConfig{"servers.nlp": v.cfg.Servers.NLP, "servers.wrapped": v.cfg.Servers.Wrapped} {
		if s.Port < 1 || s.Port > 65535 {
			return fmt.Errorf("%s.port out of range: %d", name, s.Port)
		}
	}
	return nil
}

func (v *validator) schedule() error {
	if v.cfg.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule.interval must be at least 1m, got %s", v.cfg.Schedule.Interval)
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, raw)
	}
	return nil
}
