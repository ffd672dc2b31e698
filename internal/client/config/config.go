package config

import "time"

// Config holds runtime settings for the todokeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the backend (scheme://host:port, no /api/v1).
//   - DatabasePath: path of the local SQLite file holding the session slot.
//   - RequestTimeout: per-request timeout; 0 disables the client-side
//     timeout and leaves behavior to the transport.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.DatabasePath = "todokeeper.db"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
