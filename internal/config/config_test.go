package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"REELTALK_API_URL", "REELTALK_API_TOKEN", "REELTALK_API_TIMEOUT_SECONDS",
		"FETCH_CONCURRENCY", "REDIS_ENABLED", "LOG_LEVEL", "LOG_FORMAT", "ONBOARDING_PAGE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:4000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Fetch.Concurrency != 8 {
		t.Errorf("Concurrency = %d", cfg.Fetch.Concurrency)
	}
	if cfg.Redis.Enabled {
		t.Errorf("Redis should be disabled by default")
	}
	if cfg.Onboarding.PageSize != 24 {
		t.Errorf("PageSize = %d", cfg.Onboarding.PageSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REELTALK_API_URL", "https://api.reeltalk.test/api/")
	t.Setenv("REELTALK_API_TOKEN", "tok")
	t.Setenv("REELTALK_API_TIMEOUT_SECONDS", "3")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.reeltalk.test/api" {
		t.Errorf("trailing slash not trimmed: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if got := cfg.Redis.Addr(); got != "cache:6380" {
		t.Errorf("Addr() = %q", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL:       "http://localhost:4000/api",
				Timeout:       time.Second,
				RatePerSecond: 1,
				Burst:         1,
			},
			Fetch:      FetchConfig{Concurrency: 4},
			Redis:      RedisConfig{Port: 6379},
			Logging:    LoggingConfig{Level: "info", Format: "console"},
			Onboarding: OnboardingConfig{PageSize: 24},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}

	tests := map[string]func(*Config){
		"bad url":         func(c *Config) { c.API.BaseURL = "not a url" },
		"zero timeout":    func(c *Config) { c.API.Timeout = 0 },
		"no concurrency":  func(c *Config) { c.Fetch.Concurrency = 0 },
		"bad log level":   func(c *Config) { c.Logging.Level = "verbose" },
		"bad log format":  func(c *Config) { c.Logging.Format = "xml" },
		"redis no host":   func(c *Config) { c.Redis.Enabled = true; c.Redis.Host = "" },
		"huge page size":  func(c *Config) { c.Onboarding.PageSize = 500 },
		"redis port zero": func(c *Config) { c.Redis.Port = 0 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
