package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultDataDir           = "."
	defaultServerPort        = "0.0.0.0:3000"
	defaultTVMazeBaseURL     = "https://api.tvmaze.com"
	defaultAutoPopulateQuery = "cinema"
	defaultViewsDir          = "./views"
	defaultHTTPTimeout       = 30 * time.Second
	defaultDBFilePermissions = 0666
)

type Config struct {
	DataDir           string
	ServerPort        string
	TVMazeBaseURL     string
	AutoPopulateQuery string
	ViewsDir          string
	HTTPTimeout       time.Duration
	DBFilePermissions os.FileMode
}

// Load reads configuration from environment variables. Every value has
// a default; nothing is required.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:           getEnvOrDefault("DATA_DIR", defaultDataDir),
		ServerPort:        getEnvOrDefault("SERVER_PORT", defaultServerPort),
		TVMazeBaseURL:     getEnvOrDefault("TVMAZE_URL", defaultTVMazeBaseURL),
		AutoPopulateQuery: getEnvOrDefault("AUTO_POPULATE_QUERY", defaultAutoPopulateQuery),
		ViewsDir:          getEnvOrDefault("VIEWS_DIR", defaultViewsDir),
		HTTPTimeout:       defaultHTTPTimeout,
		DBFilePermissions: defaultDBFilePermissions,
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) DBPath() string {
	return c.DataDir + "/catalog.db"
}

func (c *Config) AuthDBPath() string {
	return c.DataDir + "/users.db"
}
