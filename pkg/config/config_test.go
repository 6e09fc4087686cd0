package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be 8080, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if !cfg.Cache.Enabled {
		t.Error("Expected cache to be enabled by default")
	}

	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Expected cache TTL to be 10m, got %v", cfg.Cache.TTL)
	}

	if cfg.API.RateLimit != 20 {
		t.Errorf("Expected rate limit to be 20, got %v", cfg.API.RateLimit)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("SCORING_CONFIG", "/etc/creditlens/scoring.yaml")
	os.Setenv("API_RATE_BURST", "5")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("SCORING_CONFIG")
		os.Unsetenv("API_RATE_BURST")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Scoring.ConfigPath != "/etc/creditlens/scoring.yaml" {
		t.Errorf("Expected scoring config path, got %q", cfg.Scoring.ConfigPath)
	}

	if cfg.API.RateBurst != 5 {
		t.Errorf("Expected burst to be 5, got %d", cfg.API.RateBurst)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateRateLimit(t *testing.T) {
	os.Setenv("API_RATE_LIMIT", "-1")
	defer os.Unsetenv("API_RATE_LIMIT")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when API_RATE_LIMIT is negative, got nil")
	}
}

func TestValidateHTTP(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HTTP.Timeout != 30*time.Second || cfg.HTTP.MaxRetries != 3 {
		t.Errorf("Unexpected HTTP defaults: %+v", cfg.HTTP)
	}

	os.Setenv("HTTP_MAX_RETRIES", "-2")
	defer os.Unsetenv("HTTP_MAX_RETRIES")

	if _, err := Load(); err == nil {
		t.Error("Expected error when HTTP_MAX_RETRIES is negative, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	if duration != 2*time.Hour {
		t.Errorf("Expected duration to be %v, got %v", 2*time.Hour, duration)
	}

	os.Setenv("TEST_DURATION", "not-a-duration")
	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback to 1h, got %v", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "2.5")
	defer os.Unsetenv("TEST_FLOAT")

	if value := getEnvAsFloat("TEST_FLOAT", 1); value != 2.5 {
		t.Errorf("Expected value to be 2.5, got %v", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "false")
	defer os.Unsetenv("TEST_BOOL")

	if value := getEnvAsBool("TEST_BOOL", true); value != false {
		t.Errorf("Expected value to be false, got %v", value)
	}
}
