package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/kapu/reeltalk-go/internal/constants"
)

type Config struct {
	API        APIConfig
	Fetch      FetchConfig
	Redis      RedisConfig
	Logging    LoggingConfig
	Onboarding OnboardingConfig
}

type APIConfig struct {
	BaseURL       string        `validate:"required,url"`
	Token         string        `validate:"omitempty"`
	Timeout       time.Duration `validate:"gt=0"`
	RatePerSecond float64       `validate:"gt=0"`
	Burst         int           `validate:"gte=1"`
}

type FetchConfig struct {
	Concurrency int `validate:"gte=1,lte=64"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     int    `validate:"gte=1,lte=65535"`
	Password string
	DB       int `validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	File   string
	Format string `validate:"oneof=console json"`
}

type OnboardingConfig struct {
	PageSize int `validate:"gte=1,lte=100"`
}

var validate = validator.New()

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:       strings.TrimRight(getEnv("REELTALK_API_URL", constants.APIConfig.DefaultBaseURL), "/"),
			Token:         getEnv("REELTALK_API_TOKEN", ""),
			Timeout:       time.Duration(getEnvInt("REELTALK_API_TIMEOUT_SECONDS", int(constants.APIConfig.Timeout/time.Second))) * time.Second,
			RatePerSecond: getEnvFloat("REELTALK_RATE_LIMIT_RPS", constants.APIConfig.RatePerSecond),
			Burst:         getEnvInt("REELTALK_RATE_LIMIT_BURST", constants.APIConfig.Burst),
		},
		Fetch: FetchConfig{
			Concurrency: getEnvInt("FETCH_CONCURRENCY", constants.FetchConfig.Concurrency),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "warn")),
			File:   getEnv("LOG_FILE", ""),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		},
		Onboarding: OnboardingConfig{
			PageSize: getEnvInt("ONBOARDING_PAGE_SIZE", constants.Onboarding.MoviesPerPage),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// Addr returns host:port for the cache client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
