// Package config loads and validates the plenar YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1.0"

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "plenar.yaml"

// Config is the root of plenar.yaml.
type Config struct {
	Version  string         `yaml:"version"`
	Source   SourceConfig   `yaml:"source"`
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	NLP      NLPConfig      `yaml:"nlp"`
	Servers  ServersConfig  `yaml:"servers"`
	Notify   NotifyConfig   `yaml:"notify"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig describes the MCP server protocols are fetched from.
type SourceConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	Backoff    BackoffMode   `yaml:"backoff"`
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	MaxRetries int           `yaml:"max_retries"`
}

// DataConfig names the working directories of the pipeline.
type DataConfig struct {
	DataDir    string `yaml:"data_dir"`    // downloaded protocols, state.json, speeches.json
	ResultsDir string `yaml:"results_dir"` // analysis output
	WebDir     string `yaml:"web_dir"`     // export output, served by serve-wrapped
	// GenderMapping is an optional YAML file of name -> male|female overrides.
	GenderMapping string `yaml:"gender_mapping,omitempty"`
	// UnknownNames, when set, receives names the gender detection could not classify.
	UnknownNames string `yaml:"unknown_names,omitempty"`
}

// AnalysisConfig bounds the analysis step.
type AnalysisConfig struct {
	Wahlperiode  int      `yaml:"wahlperiode"`
	Parties      []string `yaml:"parties,omitempty"` // empty: all parties found
	MaxProtocols int      `yaml:"max_protocols"`     // 0: all
	TopN         int      `yaml:"top_n"`
}

// NLPConfig selects and configures the tagger.
type NLPConfig struct {
	Mode       NLPMode       `yaml:"mode"`
	ServiceURL string        `yaml:"service_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ServersConfig holds the listen addresses of both HTTP APIs.
type ServersConfig struct {
	NLP     ServerConfig `yaml:"nlp"`
	Wrapped ServerConfig `yaml:"wrapped"`
}

// ServerConfig is a single listen address.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// NotifyConfig enables export notifications over NATS. Empty URL disables them.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject"`
}

// ScheduleConfig drives the watch command.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig configures the slog default logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}

// Load reads configPath, expands environment variables and runs the
// normalize, defaults and validate passes.
func Load(configPath string) (*Config, error) {
	if loaded, err := loadEnvFiles(); err != nil {
		slog.Warn("could not load env file", "error", err)
	} else {
		for _, f := range loaded {
			slog.Debug("loaded environment variables", "file", f)
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes the same way Load does, without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)
	}

	if err := normalize(&cfg); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configPath when set. Without a path it loads DefaultFile
// when present and falls back to Default otherwise.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Analysis.Parties = []string{"SPD", "CDU/CSU", "GRÜNE", "AfD", "DIE LINKE"}
	example.Notify.NATSURL = "${NATS_URL}"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// #nosec G306 -- example config is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
