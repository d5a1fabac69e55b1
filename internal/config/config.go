package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Report  ReportConfig  `mapstructure:"report"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig defines the remote reporting service endpoint
type ServerConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	HTTPTimeout string `mapstructure:"http_timeout"`
}

// AuthConfig defines the reporting user's credentials
type AuthConfig struct {
	UserKey  string `mapstructure:"user_key"`
	Password string `mapstructure:"password"`
}

// ReportConfig defines report generation behavior
type ReportConfig struct {
	PageSize           int    `mapstructure:"page_size"`
	SessionCap         int    `mapstructure:"session_cap"`
	WindowDays         int    `mapstructure:"window_days"`
	CacheFailedLookups bool   `mapstructure:"cache_failed_lookups"`
	OutputDir          string `mapstructure:"output_dir"`
}

// CacheConfig defines the username cache backend
type CacheConfig struct {
	Backend    string      `mapstructure:"backend"` // "memory" or "redis"
	MemorySize int         `mapstructure:"memory_size"`
	Redis      RedisConfig `mapstructure:"redis"`
}

// RedisConfig defines Redis connection settings
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	DialTimeout  string `mapstructure:"dial_timeout"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	NameTTL      string `mapstructure:"name_ttl"` // "0" keeps names indefinitely
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig defines the optional metrics endpoint
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("VIEWSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ParsedHTTPTimeout returns the parsed HTTP timeout
func (c *ServerConfig) ParsedHTTPTimeout() (time.Duration, error) {
	return time.ParseDuration(c.HTTPTimeout)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults. Empty defaults register the keys so environment
	// overrides are picked up even without a config file entry.
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.http_timeout", "30s")

	// Auth defaults
	v.SetDefault("auth.user_key", "")
	v.SetDefault("auth.password", "")

	// Report defaults
	v.SetDefault("report.page_size", 25)
	v.SetDefault("report.session_cap", 100)
	v.SetDefault("report.window_days", 30)
	v.SetDefault("report.cache_failed_lookups", true)
	v.SetDefault("report.output_dir", ".")

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.memory_size", 10000)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 10)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")
	v.SetDefault("cache.redis.name_ttl", "0")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen_addr", "127.0.0.1:9090")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server.base_url: %s", cfg.Server.BaseURL)
	}

	if _, err := cfg.Server.ParsedHTTPTimeout(); err != nil {
		return fmt.Errorf("invalid server.http_timeout: %w", err)
	}

	if cfg.Report.PageSize <= 0 {
		return fmt.Errorf("report.page_size must be positive: %d", cfg.Report.PageSize)
	}
	if cfg.Report.SessionCap <= 0 {
		return fmt.Errorf("report.session_cap must be positive: %d", cfg.Report.SessionCap)
	}
	if cfg.Report.WindowDays <= 0 {
		return fmt.Errorf("report.window_days must be positive: %d", cfg.Report.WindowDays)
	}

	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache.backend: %s", cfg.Cache.Backend)
	}

	return nil
}
