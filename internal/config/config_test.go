package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plenar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_AppliesAllDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, CurrentVersion, cfg.Version)
	require.Equal(t, DefaultServerURL, cfg.Source.ServerURL)
	require.Equal(t, DefaultWahlperiode, cfg.Analysis.Wahlperiode)
	require.Equal(t, NLPModeAuto, cfg.NLP.Mode)
	require.Equal(t, "0.0.0.0:8000", cfg.Servers.NLP.Addr())
	require.Equal(t, "0.0.0.0:8001", cfg.Servers.Wrapped.Addr())
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.NoError(t, Validate(cfg))
}

func TestLoad_ExpandsEnvAndNormalizes(t *testing.T) {
	t.Setenv("PLENAR_TEST_SERVER", "http://mcp.internal:3000/")
	path := writeConfig(t, `
version: "1.0"
source:
  server_url: ${PLENAR_TEST_SERVER}
  retry:
    backoff: Fixed
    initial: 2s
    max: 4s
nlp:
  mode: SPACY
  timeout: 5s
analysis:
  wahlperiode: 20
  parties: [" SPD ", "", "AfD"]
logging:
  level: WARNING
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://mcp.internal:3000", cfg.Source.ServerURL)
	require.Equal(t, BackoffFixed, cfg.Source.Retry.Backoff)
	require.Equal(t, 2*time.Second, cfg.Source.Retry.Initial)
	require.Equal(t, NLPModeService, cfg.NLP.Mode)
	require.Equal(t, 5*time.Second, cfg.NLP.Timeout)
	require.Equal(t, []string{"SPD", "AfD"}, cfg.Analysis.Parties)
	require.Equal(t, LogLevelWarn, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "configuration file not found")
}

func TestParse_RejectsUnknownEnum(t *testing.T) {
	_, err := Parse([]byte("nlp:\n  mode: magic\n"))
	require.ErrorContains(t, err, "invalid nlp.mode")
}

func TestParse_RejectsWrongVersion(t *testing.T) {
	_, err := Parse([]byte("version: \"9.9\"\n"))
	require.ErrorContains(t, err, "unsupported configuration version")
}

func TestValidate_Bounds(t *testing.T) {
	cases := map[string]func(*Config){
		"top_n":       func(c *Config) { c.Analysis.TopN = 501 },
		"wahlperiode": func(c *Config) { c.Analysis.Wahlperiode = -1 },
		"port":        func(c *Config) { c.Servers.Wrapped.Port = 70000 },
		"interval":    func(c *Config) { c.Schedule.Interval = time.Second },
		"url":         func(c *Config) { c.Source.ServerURL = "ftp://x" },
		"retry":       func(c *Config) { c.Source.Retry.Initial = time.Minute },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.Error(t, Validate(cfg))
		})
	}
}

func TestValidate_LexiconModeSkipsServiceURL(t *testing.T) {
	cfg := Default()
	cfg.NLP.Mode = NLPModeLexicon
	cfg.NLP.ServiceURL = "not a url"
	require.NoError(t, Validate(cfg))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
	path := filepath.Join(t.TempDir(), "plenar.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "nats://127.0.0.1:4222", cfg.Notify.NATSURL)
	require.Contains(t, cfg.Analysis.Parties, "CDU/CSU")
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, DefaultServerURL, cfg.Source.ServerURL)
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("PLENAR_A=fromfile\nPLENAR_B=fromfile\n"), 0o600))
	t.Setenv("PLENAR_A", "fromenv")
	t.Setenv("PLENAR_B", "")
	os.Unsetenv("PLENAR_B")

	loaded, err := loadEnvFiles()
	require.NoError(t, err)
	require.Equal(t, []string{".env"}, loaded)
	require.Equal(t, "fromenv", os.Getenv("PLENAR_A"))
	require.Equal(t, "fromfile", os.Getenv("PLENAR_B"))
}
