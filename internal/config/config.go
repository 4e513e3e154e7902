package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	State       StateConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StateConfig struct {
	Path string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can start in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "hrboard-client"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL: getString("API_BASE_URL", "https://news-app-backend-lo3a.onrender.com"),
			Timeout: getDuration("API_TIMEOUT", 30*time.Second),
		},
		State: StateConfig{
			Path: getString("STATE_DB_PATH", "./data/state.db"),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
