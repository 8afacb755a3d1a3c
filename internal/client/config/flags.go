package config

import (
	"flag"
	"os"

	"github.com/forensicvideo/console/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-s string   path of the session database file
//	-l string   path of the log file
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the session database")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "path of the log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
