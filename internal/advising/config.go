package advising

import "time"

// Config holds the connection settings for the advising services.
type Config struct {
	BaseURL   string
	TimeoutMs int // 0 disables the per-call deadline
	LogCalls  bool
}

// DefaultConfig points at a locally running advising service.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://127.0.0.1:5000",
		TimeoutMs: 15000,
		LogCalls:  true,
	}
}

// Timeout returns the per-call deadline, or 0 when none applies.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
