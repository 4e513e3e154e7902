package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "hrboard-client" {
		t.Fatalf("app name = %q", cfg.AppName)
	}
	if cfg.API.BaseURL == "" {
		t.Fatal("base URL must have a default")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Encoding != "json" {
		t.Fatalf("logger config = %+v", cfg.Logger)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://staging.example.com")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://staging.example.com" {
		t.Fatalf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logger.Level)
	}
}

func TestTimeoutAcceptsBareSeconds(t *testing.T) {
	t.Setenv("API_TIMEOUT", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Timeout != 45*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
}
