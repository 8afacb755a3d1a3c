package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/forensicvideo/console/internal/flagx"
	"github.com/forensicvideo/console/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDBPath  string         `json:"session_db_path"`
	ActivityDays   int            `json:"activity_days"`
	RecentLimit    int            `json:"recent_limit"`
	LogFile        string         `json:"log_file"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Zero-valued JSON fields leave the existing value untouched, so a partial
// file only overrides what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.ActivityDays != 0 {
		cfg.ActivityDays = jc.ActivityDays
	}
	if jc.RecentLimit != 0 {
		cfg.RecentLimit = jc.RecentLimit
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
}
