package cache

import (
	"time"

	"DivYield/pkg/util"
)

// RedisConfig is the `cache.redis` config section.
type RedisConfig struct {
	Addr        string        `yaml:"addr" default:"localhost:6379"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	Prefix      string        `yaml:"prefix" default:"divyield"`
	PoolSize    int           `yaml:"pool_size" default:"10"`
	DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
}

// MemoryOption configures MemoryCache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	maxSize         int
	cleanupInterval time.Duration
	clock           util.Clock
}

// WithMemoryMaxSize caps the number of entries; the least recently used entry
// is evicted first.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxSize = size
	}
}

// WithMemoryCleanup sets how often expired entries are swept. Zero disables
// the sweeper; expired entries are still never served.
func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.cleanupInterval = interval
	}
}

// WithMemoryClock replaces the wall clock used for expiry.
func WithMemoryClock(clock util.Clock) MemoryOption {
	return func(c *memoryConfig) {
		c.clock = clock
	}
}
