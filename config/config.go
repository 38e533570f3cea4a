package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type BackendConfig struct {
	BaseURL        string        `yaml:"base_url" mapstructure:"base_url" envconfig:"BACKEND_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

type TokenConfig struct {
	// Path holds the cookie-file equivalent: the persisted
	// access/refresh token pair.
	Path string `yaml:"path" mapstructure:"path" envconfig:"TOKEN_PATH"`
}

type BookingConfig struct {
	// BlockedSlotTTL bounds how long a fetched blocked-slot set is
	// reused within one booking session.
	BlockedSlotTTL   time.Duration `yaml:"blocked_slot_ttl" mapstructure:"blocked_slot_ttl"`
	BlockedSlotLimit int           `yaml:"blocked_slot_limit" mapstructure:"blocked_slot_limit"`
}

type MockAPIConfig struct {
	Port          int    `yaml:"port" mapstructure:"port" envconfig:"MOCKAPI_PORT"`
	JWTSecret     string `yaml:"jwt_secret" mapstructure:"jwt_secret" envconfig:"MOCKAPI_JWT_SECRET"`
	RefreshSecret string `yaml:"refresh_secret" mapstructure:"refresh_secret" envconfig:"MOCKAPI_REFRESH_SECRET"`
}

type Config struct {
	Backend   BackendConfig   `yaml:"backend" mapstructure:"backend"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Token     TokenConfig     `yaml:"token" mapstructure:"token"`
	Booking   BookingConfig   `yaml:"booking" mapstructure:"booking"`
	MockAPI   MockAPIConfig   `yaml:"mockapi" mapstructure:"mockapi"`
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level" envconfig:"LOG_LEVEL"`
}

func defaults() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Token: TokenConfig{
			Path: ".portal/tokens.json",
		},
		Booking: BookingConfig{
			BlockedSlotTTL:   5 * time.Minute,
			BlockedSlotLimit: 1000,
		},
		MockAPI: MockAPIConfig{
			Port:          8080,
			JWTSecret:     "dev-secret",
			RefreshSecret: "dev-refresh-secret",
		},
		LogLevel: "info",
	}
}

// LoadConfig reads config.yml from the usual locations and then applies
// PORTAL_* environment overrides on top.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus env carry the client.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("PORTAL", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	return cfg, nil
}
