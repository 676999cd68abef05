package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig holds the auction backend endpoints.
type BackendConfig struct {
	BaseURL   string        `yaml:"base_url"`
	SocketURL string        `yaml:"socket_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:   "https://ipl-server-dsy3.onrender.com/api",
			SocketURL: "wss://ipl-server-dsy3.onrender.com/socket",
			Timeout:   30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file, falling back to defaults for any
// unset field, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Backend.BaseURL == "" {
		return Config{}, fmt.Errorf("backend base_url is required")
	}
	if cfg.Backend.SocketURL == "" {
		return Config{}, fmt.Errorf("backend socket_url is required")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Backend.BaseURL = getEnv("AUCTION_BASE_URL", c.Backend.BaseURL)
	c.Backend.SocketURL = getEnv("AUCTION_SOCKET_URL", c.Backend.SocketURL)
	c.Log.Level = getEnv("AUCTION_LOG_LEVEL", c.Log.Level)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
