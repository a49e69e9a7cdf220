package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/bruschetta/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://catalog.example.com
  search_param: term
  review_addressing: slug
  timeout: 3s
fetch:
  max_concurrent: 4
rating:
  favorable_threshold: 75
logging:
  file: "-"
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := &Config{
		Server: ServerConfig{
			URL:              "https://catalog.example.com",
			SearchParam:      "term",
			ReviewAddressing: AddressBySlug,
			Timeout:          3 * time.Second,
		},
		Fetch:   FetchConfig{MaxConcurrent: 4},
		Rating:  RatingConfig{FavorableThreshold: 75},
		Logging: LoggingConfig{File: "-", Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("BRUSCHETTA_SERVER_URL", "http://10.0.0.5:8888")
	path := writeConfig(t, "fetch:\n  max_concurrent: 2\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.URL != "http://10.0.0.5:8888" {
		t.Errorf("server.url = %q, want env override", cfg.Server.URL)
	}
	if cfg.Server.SearchParam != "q" || cfg.Server.ReviewAddressing != AddressByID {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}
	if cfg.Fetch.MaxConcurrent != 2 {
		t.Errorf("fetch.max_concurrent = %d, want 2", cfg.Fetch.MaxConcurrent)
	}
	if cfg.Rating.FavorableThreshold != domain.DefaultFavorableThreshold {
		t.Errorf("rating.favorable_threshold = %d", cfg.Rating.FavorableThreshold)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-http url", func(c *Config) { c.Server.URL = "ftp://example.com" }},
		{"missing host", func(c *Config) { c.Server.URL = "http://" }},
		{"search param", func(c *Config) { c.Server.SearchParam = "query" }},
		{"addressing", func(c *Config) { c.Server.ReviewAddressing = "imdb" }},
		{"timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"concurrency", func(c *Config) { c.Fetch.MaxConcurrent = 0 }},
		{"threshold", func(c *Config) { c.Rating.FavorableThreshold = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestSaveConfigIsLoadable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ReviewAddressing = AddressBySlug
	cfg.Server.Timeout = 7 * time.Second

	path, err := SaveConfig(cfg, filepath.Join(t.TempDir(), "nested", "config.yaml"))
	if err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARNING": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
	}
	for in, want := range tests {
		if got := parseLogLevel(in).String(); got != want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
