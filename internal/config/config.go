// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
//
// The database credentials themselves are never configured here — they
// come from Secret Manager at startup. Pool sizing is likewise fixed in
// the database package and is deliberately not configurable.
package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the non-secret database settings.
type DatabaseConfig struct {
	// SocketDir is the directory holding Cloud SQL unix sockets.
	// The full socket path is SocketDir/<connection name from secrets>.
	SocketDir string `yaml:"socket_dir"`
}

// SecretsConfig holds secret-resolver settings.
type SecretsConfig struct {
	// Project overrides the project ID discovered from ambient
	// credentials. Empty means "use ambient credentials".
	Project string `yaml:"project"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration structure.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Addr: ":8080"},
		Database: DatabaseConfig{SocketDir: "/cloudsql"},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// named by PETS_CONFIG (if set), then environment variable overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("PETS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg. PORT follows the
// Cloud Run convention of a bare port number.
func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	if dir := os.Getenv("DB_SOCKET_DIR"); dir != "" {
		cfg.Database.SocketDir = dir
	}
	if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		cfg.Secrets.Project = project
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	if c.Database.SocketDir == "" {
		return fmt.Errorf("database.socket_dir must not be empty")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
