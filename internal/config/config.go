// Package config loads and validates checker configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/probelab/urlcheck/internal/checker"
)

// defaultUserAgent mimics a desktop browser; several target sites block
// unknown agents outright.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Checker CheckerConfig `mapstructure:"checker"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CheckerConfig governs the fetch-with-retry engine.
type CheckerConfig struct {
	Concurrency       int     `mapstructure:"concurrency"`
	MaxRetries        int     `mapstructure:"max_retries"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RetryableStatuses []int   `mapstructure:"retryable_statuses"`
	UserAgent         string  `mapstructure:"user_agent"`
	RateLimitRPS      float64 `mapstructure:"rate_limit_rps"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("URLCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("checker.concurrency", 10)
	v.SetDefault("checker.max_retries", 3)
	v.SetDefault("checker.retry_delay_seconds", 2)
	v.SetDefault("checker.timeout_seconds", 15)
	v.SetDefault("checker.retryable_statuses", []int{429, 503})
	v.SetDefault("checker.user_agent", defaultUserAgent)
	v.SetDefault("checker.rate_limit_rps", 0.0)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Checker.Concurrency <= 0 {
		return fmt.Errorf("checker.concurrency must be > 0")
	}
	if c.Checker.MaxRetries <= 0 {
		return fmt.Errorf("checker.max_retries must be > 0")
	}
	if c.Checker.RetryDelaySeconds < 0 {
		return fmt.Errorf("checker.retry_delay_seconds must be >= 0")
	}
	if c.Checker.TimeoutSeconds <= 0 {
		return fmt.Errorf("checker.timeout_seconds must be > 0")
	}
	if c.Checker.UserAgent == "" {
		return fmt.Errorf("checker.user_agent must be set")
	}
	return nil
}

// Engine converts the loaded knobs into the checker's runtime config.
func (c CheckerConfig) Engine() checker.Config {
	return checker.Config{
		Concurrency:       c.Concurrency,
		MaxRetries:        c.MaxRetries,
		RetryDelay:        time.Duration(c.RetryDelaySeconds) * time.Second,
		RequestTimeout:    time.Duration(c.TimeoutSeconds) * time.Second,
		RetryableStatuses: c.RetryableStatuses,
		UserAgent:         c.UserAgent,
		RateLimitRPS:      c.RateLimitRPS,
	}
}
