// Package config resolves runtime settings. Later sources win:
// built-in defaults, the YAML file, a .env file, COMPASS_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full set of runtime settings.
type Config struct {
	DBPath   string         `yaml:"db_path"`
	Advising AdvisingConfig `yaml:"advising"`
	Log      LogConfig      `yaml:"log"`
}

// AdvisingConfig configures the remote advising services.
type AdvisingConfig struct {
	BaseURL          string `yaml:"base_url"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"` // 0 disables the deadline
	LogCalls         bool   `yaml:"log_calls"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty discards logs
}

// Client converts to the advising client's settings.
func (a AdvisingConfig) Client() advising.Config {
	return advising.Config{
		BaseURL:   a.BaseURL,
		TimeoutMs: a.RequestTimeoutMs,
		LogCalls:  a.LogCalls,
	}
}

// DataDir is where the database, log, and config file live by default:
// $COMPASS_HOME, else ~/.compass.
func DataDir() (string, error) {
	if dir := os.Getenv("COMPASS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".compass"), nil
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Default returns the built-in settings rooted at dataDir.
func Default(dataDir string) *Config {
	ac := advising.DefaultConfig()
	return &Config{
		DBPath: filepath.Join(dataDir, "compass.db"),
		Advising: AdvisingConfig{
			BaseURL:          ac.BaseURL,
			RequestTimeoutMs: ac.TimeoutMs,
			LogCalls:         ac.LogCalls,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dataDir, "compass.log"),
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (a missing file is fine), the .env file at envFile (likewise), and the
// environment. Flags are applied afterwards by the caller.
func Load(path, envFile string) (*Config, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	cfg := Default(dir)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if envFile != "" {
		// Variables already set in the environment are not overwritten.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides reads COMPASS_* variables. Unparseable values are
// ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COMPASS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("COMPASS_ADVISING_URL"); v != "" {
		c.Advising.BaseURL = v
	}
	if v := os.Getenv("COMPASS_ADVISING_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Advising.RequestTimeoutMs = n
		}
	}
	if v := os.Getenv("COMPASS_ADVISING_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Advising.LogCalls = b
		}
	}
	if v := os.Getenv("COMPASS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("COMPASS_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("COMPASS_LOG_FILE"); ok {
		c.Log.File = v
	}
}
