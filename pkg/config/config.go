package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"2s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logging struct {
		Level     string `yaml:"level" default:"info"`
		Format    string `yaml:"format" default:"console"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic" default:"brentdash-logs"`
			Interval       time.Duration `yaml:"interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Analytics struct {
		BaseURL          string        `yaml:"base_url" default:"http://localhost:5000/api"`
		Timeout          time.Duration `yaml:"timeout" default:"15s"`
		VolatilityWindow int           `yaml:"volatility_window" default:"30"`
		Cache            struct {
			Enabled bool          `yaml:"enabled"`
			TTL     time.Duration `yaml:"ttl" default:"60s"`
		} `yaml:"cache"`
	} `yaml:"analytics"`
	Cache struct {
		Backend       string `yaml:"backend" default:"memory"`
		MemoryMaxSize int    `yaml:"memory_max_size" default:"256"`
		Redis         struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"brentdash"`
			Pool     struct {
				Size    int           `yaml:"size" default:"10"`
				MinIdle int           `yaml:"min_idle" default:"2"`
				Timeout time.Duration `yaml:"timeout" default:"30s"`
			} `yaml:"pool"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Theme struct {
		Store   string `yaml:"store" default:"file"`
		Path    string `yaml:"path" default:"data/theme.json"`
		Default string `yaml:"default" default:"system"`
	} `yaml:"theme"`
	UI struct {
		DeferredFragments            bool          `yaml:"deferred_fragments" default:"true"`
		VolatilityTabShowsVolatility bool          `yaml:"volatility_tab_shows_volatility"`
		ChartWidth                   int           `yaml:"chart_width" default:"960"`
		ChartHeight                  int           `yaml:"chart_height" default:"350"`
		ChartCacheTTL                time.Duration `yaml:"chart_cache_ttl" default:"30s"`
		Location                     string        `yaml:"location" default:"UTC"`
	} `yaml:"ui"`
	Export struct {
		Burst        float64 `yaml:"burst" default:"3"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
	} `yaml:"export"`
}

// Default returns a Config populated only from struct defaults.
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return c
}

// Load reads and parses a YAML configuration file. A missing file yields the
// defaults so the dashboard can start with environment overrides only.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, then applies
// environment variable overrides.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("BRENTDASH_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("BRENTDASH_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("BRENTDASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ANALYTICS_BASE_URL"); v != "" {
		c.Analytics.BaseURL = v
	}
	if v := os.Getenv("BRENTDASH_THEME_STORE"); v != "" {
		c.Theme.Store = v
	}
	if v := os.Getenv("BRENTDASH_THEME_PATH"); v != "" {
		c.Theme.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("analytics.base_url is required")
	}
	if c.Analytics.VolatilityWindow <= 0 {
		return fmt.Errorf("analytics.volatility_window must be positive, got %d", c.Analytics.VolatilityWindow)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	switch c.Theme.Store {
	case "file", "cache":
	default:
		return fmt.Errorf("theme.store must be 'file' or 'cache', got '%s'", c.Theme.Store)
	}
	if c.Theme.Store == "file" && c.Theme.Path == "" {
		return fmt.Errorf("theme.path is required for the file store")
	}
	switch c.Theme.Default {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("theme.default must be 'light', 'dark' or 'system', got '%s'", c.Theme.Default)
	}
	if c.Logging.Collector.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when logging.collector is enabled")
	}
	if _, err := time.LoadLocation(c.UI.Location); err != nil {
		return fmt.Errorf("ui.location: %w", err)
	}
	return nil
}
