package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/spf13/viper"
)

// AddressingMode selects how review resources are addressed
type AddressingMode string

const (
	// AddressByID requests /api/1/reviews/<id>
	AddressByID AddressingMode = "id"
	// AddressBySlug requests /api/1/reviews/<year>/<slug>
	AddressBySlug AddressingMode = "slug"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Rating  RatingConfig  `mapstructure:"rating"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog API configuration
type ServerConfig struct {
	URL              string         `mapstructure:"url"`               // API base URL
	SearchParam      string         `mapstructure:"search_param"`      // "q" or "term"
	ReviewAddressing AddressingMode `mapstructure:"review_addressing"` // "id" or "slug"
	Timeout          time.Duration  `mapstructure:"timeout"`
}

// FetchConfig holds fan-out limits
type FetchConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent"` // review requests in flight at once
}

// RatingConfig holds presentation settings for scores
type RatingConfig struct {
	FavorableThreshold int `mapstructure:"favorable_threshold"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // "-" logs to stderr
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:              "http://localhost:8888",
			SearchParam:      "q",
			ReviewAddressing: AddressByID,
			Timeout:          10 * time.Second,
		},
		Fetch: FetchConfig{
			MaxConcurrent: 9,
		},
		Rating: RatingConfig{
			FavorableThreshold: domain.DefaultFavorableThreshold,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bruschetta", "bruschetta.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "bruschetta", "bruschetta.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bruschetta")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "bruschetta")
	}
}

// newViper builds a viper instance seeded with defaults and env overrides.
func newViper() *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("server.url", def.Server.URL)
	v.SetDefault("server.search_param", def.Server.SearchParam)
	v.SetDefault("server.review_addressing", string(def.Server.ReviewAddressing))
	v.SetDefault("server.timeout", def.Server.Timeout)
	v.SetDefault("fetch.max_concurrent", def.Fetch.MaxConcurrent)
	v.SetDefault("rating.favorable_threshold", def.Rating.FavorableThreshold)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// BRUSCHETTA_SERVER_URL overrides server.url
	v.SetEnvPrefix("BRUSCHETTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An explicit path must exist; otherwise config.yaml is looked up in the
// user config directory and the working directory, and may be absent.
func LoadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server.url %q must be an http(s) URL", domain.ErrInvalidConfig, c.Server.URL)
	}

	switch c.Server.SearchParam {
	case "q", "term":
	default:
		return fmt.Errorf("%w: server.search_param must be \"q\" or \"term\", got %q", domain.ErrInvalidConfig, c.Server.SearchParam)
	}

	switch c.Server.ReviewAddressing {
	case AddressByID, AddressBySlug:
	default:
		return fmt.Errorf("%w: server.review_addressing must be \"id\" or \"slug\", got %q", domain.ErrInvalidConfig, c.Server.ReviewAddressing)
	}

	if c.Server.Timeout <= 0 {
		return fmt.Errorf("%w: server.timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Fetch.MaxConcurrent <= 0 {
		return fmt.Errorf("%w: fetch.max_concurrent must be positive", domain.ErrInvalidConfig)
	}
	if c.Rating.FavorableThreshold < 1 || c.Rating.FavorableThreshold > 100 {
		return fmt.Errorf("%w: rating.favorable_threshold must be within 1..100", domain.ErrInvalidConfig)
	}
	return nil
}

// SaveConfig writes cfg as YAML. An empty path writes to the default config directory.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.search_param", cfg.Server.SearchParam)
	v.Set("server.review_addressing", string(cfg.Server.ReviewAddressing))
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("fetch.max_concurrent", cfg.Fetch.MaxConcurrent)
	v.Set("rating.favorable_threshold", cfg.Rating.FavorableThreshold)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
