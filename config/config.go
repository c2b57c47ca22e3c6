package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded once at startup from the
// environment. The TMDB base URL is overridable so tests can point the
// aggregator at a local server.
type Config struct {
	Port        int
	TMDBAPIKey  string
	TMDBBaseURL string
	LogFile     string
	LogMaxSize  int // megabytes per rotated log file
	LogBackups  int
}

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

// Load reads configuration from env vars, applying defaults for everything
// except the TMDB API key, which is required.
func Load() (*Config, error) {
	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return &Config{
		Port:        getEnvInt("PORT", 8080),
		TMDBAPIKey:  apiKey,
		TMDBBaseURL: getEnv("TMDB_BASE_URL", defaultTMDBBaseURL),
		LogFile:     getEnv("LOG_FILE", ""),
		LogMaxSize:  getEnvInt("LOG_MAX_SIZE_MB", 20),
		LogBackups:  getEnvInt("LOG_BACKUPS", 3),
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
