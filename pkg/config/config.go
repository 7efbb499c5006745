package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"DivYield/pkg/cache"
	applogger "DivYield/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"

	CacheMemory  = "memory"
	CacheRedis   = "redis"
	CacheLayered = "layered"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`

	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		CORS            bool          `yaml:"cors" default:"true"`
		RateLimit       struct {
			Enabled bool    `yaml:"enabled"`
			Burst   float64 `yaml:"burst" default:"20" validate:"gte=1"`
			PerSec  float64 `yaml:"per_sec" default:"5" validate:"gt=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`

	Logger applogger.Config `yaml:"logger"`

	Metrics struct {
		Enabled bool `yaml:"enabled" default:"true"`
	} `yaml:"metrics"`

	Provider struct {
		Type      string        `yaml:"type" default:"yahoo" validate:"oneof=yahoo eodhd"`
		Timeout   time.Duration `yaml:"timeout" default:"15s"`
		RateLimit float64       `yaml:"rate_limit" default:"2" validate:"gte=0"`
		Burst     int           `yaml:"burst" default:"2" validate:"gte=1"`
		UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; divyield/1.0)"`
		Yahoo     struct {
			BaseURL string `yaml:"base_url" default:"https://query2.finance.yahoo.com" validate:"url"`
		} `yaml:"yahoo"`
		EODHD struct {
			BaseURL string `yaml:"base_url" default:"https://eodhd.com" validate:"url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"eodhd"`
	} `yaml:"provider"`

	Cache struct {
		Enabled    bool              `yaml:"enabled" default:"true"`
		Backend    string            `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		TTL        time.Duration     `yaml:"ttl" default:"1h"`
		MaxEntries int               `yaml:"max_entries" default:"1024" validate:"gte=1"`
		L1TTL      time.Duration     `yaml:"l1_ttl" default:"1m"`
		Redis      cache.RedisConfig `yaml:"redis"`
	} `yaml:"cache"`
}

var validate = validator.New()

// Default returns a configuration populated from `default` tags only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. Missing keys take their
// `default` tag value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c, err = Default()
	} else {
		c, err = Load(path)
	}
	if err != nil {
		return nil, err
	}

	if err := c.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides fields from the environment lookup function and revalidates.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("YOC_PROVIDER"); v != "" {
		c.Provider.Type = v
	}
	if v := getenv("EODHD_API_KEY"); v != "" {
		c.Provider.EODHD.APIKey = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		if c.Cache.Backend == CacheMemory {
			c.Cache.Backend = CacheRedis
		}
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Provider.Type == ProviderEODHD && c.Provider.EODHD.APIKey == "" {
		return fmt.Errorf("provider.eodhd.api_key is required when provider.type is eodhd")
	}
	if c.Cache.Backend != CacheMemory && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for backend %q", c.Cache.Backend)
	}
	return nil
}
