// Package config loads portal configuration from the environment,
// with an optional YAML file override.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the portal.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the portal's own HTTP listener.
type ServerConfig struct {
	ListenAddr     string        `env:"PORTAL_LISTEN_ADDR,default=:8080" yaml:"listen_addr"`
	ReadTimeout    time.Duration `env:"PORTAL_READ_TIMEOUT,default=15s" yaml:"read_timeout"`
	WriteTimeout   time.Duration `env:"PORTAL_WRITE_TIMEOUT,default=30s" yaml:"write_timeout"`
	RateLimitRPS   int           `env:"PORTAL_RATELIMIT_RPS,default=20" yaml:"rate_limit_rps"`
	RateLimitBurst int           `env:"PORTAL_RATELIMIT_BURST,default=40" yaml:"rate_limit_burst"`
}

// UpstreamConfig configures the remote TelconGH API connection.
type UpstreamConfig struct {
	BaseURL string        `env:"TELCON_API_URL,default=https://api.telcongh.example" yaml:"base_url"`
	APIKey  string        `env:"TELCON_API_KEY" yaml:"api_key"`
	Timeout time.Duration `env:"TELCON_API_TIMEOUT,default=30s" yaml:"timeout"`
}

// RedisConfig configures the session store backend.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379" yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB,default=0" yaml:"db"`
}

// SessionConfig configures portal sessions.
type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,default=12h" yaml:"ttl"`
	CookieName   string        `env:"SESSION_COOKIE,default=telcon_session" yaml:"cookie_name"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE,default=false" yaml:"cookie_secure"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info" yaml:"level"`
	Format string `env:"LOG_FORMAT,default=json" yaml:"format"`
	Output string `env:"LOG_OUTPUT,default=stdout" yaml:"output"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromPath reads configuration from a YAML file. Unset fields fall
// back to the same defaults Load uses.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads from PORTAL_CONFIG_FILE when set, the environment
// otherwise.
func LoadOrDefault() (*Config, error) {
	if path := os.Getenv("PORTAL_CONFIG_FILE"); path != "" {
		return LoadFromPath(path)
	}
	return Load()
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Upstream: UpstreamConfig{
			BaseURL: "https://api.telcongh.example",
			Timeout: 30 * time.Second,
		},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Session: SessionConfig{TTL: 12 * time.Hour, CookieName: "telcon_session"},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 30 * time.Second
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 12 * time.Hour
	}
	return nil
}
