// Package config assembles the console's runtime settings from defaults, an
// optional JSON file, environment variables, and command-line flags — later
// sources take precedence.
package config

import "time"

// Config holds runtime settings for the console.
//
// Fields:
//   - APIBaseURL: origin of the backend REST API.
//   - RequestTimeout: upper bound for every network call.
//   - SessionDBPath: SQLite file holding the persisted session.
//   - ActivityDays: window of the dashboard activity series.
//   - RecentLimit: number of rows on the recent-uploads card.
//   - LogFile: structured-log sink; the TUI owns the terminal.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDBPath  string
	ActivityDays   int
	RecentLimit    int
	LogFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "session.db"
	c.ActivityDays = 7
	c.RecentLimit = 10
	c.LogFile = "console.log"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
