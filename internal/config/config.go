// Package config handles reading and writing .recruitdesk/config.yaml and
// applying environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .recruitdesk/config.yaml.
type Config struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
	Log     LogConfig `yaml:"log"`
	UI      UIConfig  `yaml:"ui"`
}

// APIConfig locates the admin API and the file server hosting screenshots.
type APIConfig struct {
	BaseURL          string `yaml:"base_url"`
	FileServerURL    string `yaml:"file_server_url"`
	PlaceholderImage string `yaml:"placeholder_image"`
	RequestTimeout   int    `yaml:"request_timeout"` // seconds, 0 = no timeout
}

// LogConfig controls the JSONL event log.
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
}

// UIConfig holds TUI presentation settings.
type UIConfig struct {
	MaxWidth int `yaml:"max_width"`
}

// Environment variables that override the config file. They are read from
// the process environment first and then from a .env file in the project dir.
const (
	EnvAPIURL         = "RECRUITDESK_API_URL"
	EnvFileServerURL  = "RECRUITDESK_FILE_SERVER_URL"
	EnvPlaceholderURL = "RECRUITDESK_PLACEHOLDER_URL"
	EnvRequestTimeout = "RECRUITDESK_REQUEST_TIMEOUT"
)

const configDir = ".recruitdesk"
const configFile = "config.yaml"

// Dir returns the .recruitdesk directory inside the project root.
func Dir(root string) string {
	return filepath.Join(root, configDir)
}

// ReadConfig reads .recruitdesk/config.yaml from the given project directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to .recruitdesk/config.yaml in the given project
// directory, creating the directory if needed.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with the hosted platform's
// endpoints.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:          "https://interview.aiagentictool.tech/api/admin",
			FileServerURL:    "https://interview.aiagentictool.tech",
			PlaceholderImage: "https://placehold.co/300x200/CCCCCC/FFFFFF?text=Image+Error",
			RequestTimeout:   0,
		},
		Log: LogConfig{
			Enabled: true,
		},
		UI: UIConfig{
			MaxWidth: 120,
		},
	}
}

// Load reads the config for dir, falling back to defaults when no file
// exists, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	if err := cfg.ApplyEnv(dir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides API settings from the environment. Variables already set
// in the process take precedence over those in dir/.env.
func (c *Config) ApplyEnv(dir string) error {
	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvAPIURL); ok {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvFileServerURL); ok {
		c.API.FileServerURL = v
	}
	if v, ok := lookup(EnvPlaceholderURL); ok {
		c.API.PlaceholderImage = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return fmt.Errorf("%s: expected a non-negative number of seconds, got %q", EnvRequestTimeout, v)
		}
		c.API.RequestTimeout = secs
	}
	return nil
}

// Timeout returns the configured per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.RequestTimeout) * time.Second
}
