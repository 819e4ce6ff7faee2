package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Storage   StorageConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds Azure OpenAI configuration
type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	Deployment string `mapstructure:"deployment"`
	APIVersion string `mapstructure:"api_version"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	OpenAIPerMinute int `mapstructure:"openai_per_minute"`
}

// MatchingConfig holds food matcher configuration
type MatchingConfig struct {
	MinSharedTokens    int  `mapstructure:"min_shared_tokens"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// StorageConfig holds analysis history configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/eatwise/")

	v.SetEnvPrefix("EATWISE")
	// Maps EATWISE_OPENAI_API_KEY onto openai.api_key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults suffice without one.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenAI defaults. The empty api_key default registers the key with
	// viper so the env override is visible to Unmarshal.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "https://hkust.azure-api.net/")
	v.SetDefault("openai.deployment", "gpt-4o")
	v.SetDefault("openai.api_version", "2023-05-15")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.openai_per_minute", 60)

	// Matching defaults
	v.SetDefault("matching.min_shared_tokens", 1)
	v.SetDefault("matching.enable_debug_logging", false)

	// Storage defaults
	v.SetDefault("storage.path", "eatwise.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set EATWISE_OPENAI_API_KEY)")
	}

	if config.Matching.MinSharedTokens < 1 {
		return fmt.Errorf("matching.min_shared_tokens must be at least 1, got: %d",
			config.Matching.MinSharedTokens)
	}

	if config.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}

	return nil
}
