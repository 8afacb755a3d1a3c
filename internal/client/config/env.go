package config

import "os"

// EnvAPIBaseURL selects the backend origin, mirroring the deployment
// convention of the web dashboard.
const EnvAPIBaseURL = "FV_API_URL"

func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
}
