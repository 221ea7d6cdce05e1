package config

import "github.com/spf13/pflag"

const (
	flagConfig      = "config"
	flagEnvFile     = "env-file"
	flagDB          = "db"
	flagAdvisingURL = "advising-url"
	flagTimeout     = "request-timeout-ms"
	flagLogLevel    = "log-level"
)

// Flags holds the persistent command-line overrides.
type Flags struct {
	ConfigPath string
	EnvFile    string

	fs          *pflag.FlagSet
	dbPath      string
	advisingURL string
	timeoutMs   int
	logLevel    string
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, flagConfig, DefaultPath(), "path to config.yaml")
	fs.StringVar(&f.EnvFile, flagEnvFile, ".env", "path to a .env file")
	fs.StringVar(&f.dbPath, flagDB, "", "SQLite database path (overrides COMPASS_DB)")
	fs.StringVar(&f.advisingURL, flagAdvisingURL, "", "advising service base URL")
	fs.IntVar(&f.timeoutMs, flagTimeout, 0, "advising request timeout in ms (0 disables)")
	fs.StringVar(&f.logLevel, flagLogLevel, "", "log level: debug, info, warn, error")
	return f
}

// Apply copies every flag the user actually set onto c.
func (f *Flags) Apply(c *Config) {
	if f.fs.Changed(flagDB) {
		c.DBPath = f.dbPath
	}
	if f.fs.Changed(flagAdvisingURL) {
		c.Advising.BaseURL = f.advisingURL
	}
	if f.fs.Changed(flagTimeout) && f.timeoutMs >= 0 {
		c.Advising.RequestTimeoutMs = f.timeoutMs
	}
	if f.fs.Changed(flagLogLevel) {
		c.Log.Level = f.logLevel
	}
}

// Resolve loads the configuration and applies flag overrides.
func (f *Flags) Resolve() (*Config, error) {
	cfg, err := Load(f.ConfigPath, f.EnvFile)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, nil
}
