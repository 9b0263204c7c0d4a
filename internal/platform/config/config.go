package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read by the CLIs.
const (
	KeyAPIKey       = "YOUTUBE_API_KEY"
	KeyAPIEndpoint  = "YOUTUBE_API_ENDPOINT"
	KeyLogLevel     = "LOG_LEVEL"
	KeyLogFormat    = "LOG_FORMAT"
	KeyMetricsFile  = "METRICS_FILE"
	KeyFetchTimeout = "FETCH_TIMEOUT_SECONDS"
)

// Load reads .env files and sets environment variables that are not already
// set. A missing file is not an error so callers can rely on the process
// environment or defaults. With no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	present := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		present = append(present, p)
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
