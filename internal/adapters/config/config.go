package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Sentiment SentimentConfig
	Social    SocialConfig
	Cache     CacheConfig
	Logging   LoggingConfig
}

// ServerConfig represents the HTTP server parameters
type ServerConfig struct {
	Addr            string        `envconfig:"SERVER_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// ProvidersConfig represents market data provider settings
type ProvidersConfig struct {
	FinnhubAPIKey  string        `envconfig:"FINNHUB_API_KEY" required:"false"`
	RequestTimeout time.Duration `envconfig:"PROVIDER_REQUEST_TIMEOUT" default:"5s"`
	NewsLimit      int           `envconfig:"PROVIDER_NEWS_LIMIT" default:"10"`
}

// SentimentConfig represents sentiment model settings
type SentimentConfig struct {
	ModelEnabled  bool   `envconfig:"SENTIMENT_MODEL_ENABLED" default:"true"`
	ModelEndpoint string `envconfig:"SENTIMENT_MODEL_ENDPOINT" required:"false"`
	ModelAPIKey   string `envconfig:"SENTIMENT_MODEL_API_KEY" required:"false"`
}

// SocialConfig represents social post source settings
type SocialConfig struct {
	TwitterBearerToken string `envconfig:"TWITTER_BEARER_TOKEN" required:"false"`
	PostLimit          int    `envconfig:"SOCIAL_POST_LIMIT" default:"10"`
}

// CacheConfig represents the optional quote cache
type CacheConfig struct {
	Backend  string        `envconfig:"CACHE_BACKEND" default:"memory"` // memory or redis
	RedisURL string        `envconfig:"CACHE_REDIS_URL" default:"redis://localhost:6379/0"`
	QuoteTTL time.Duration `envconfig:"CACHE_QUOTE_TTL" default:"10s"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Providers.RequestTimeout <= 0 {
		return fmt.Errorf("provider request timeout must be positive")
	}
	if c.Providers.NewsLimit < 1 {
		return fmt.Errorf("news limit must be at least 1")
	}
	if c.Social.PostLimit < 1 {
		return fmt.Errorf("social post limit must be at least 1")
	}
	if c.Sentiment.ModelEnabled && c.Sentiment.ModelEndpoint == "" {
		// Not fatal: the engine falls back to the lexicon, same as an
		// endpoint that is configured but unreachable.
		c.Sentiment.ModelEnabled = false
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache backend must be memory or redis, got %q", c.Cache.Backend)
	}
	return nil
}

// HasFinnhub reports whether the low-latency quote tier is configured
func (c *ProvidersConfig) HasFinnhub() bool {
	return c.FinnhubAPIKey != ""
}

// HasTwitter reports whether a real social source is configured
func (c *SocialConfig) HasTwitter() bool {
	return c.TwitterBearerToken != ""
}
