package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if c.Provider.Type != ProviderYahoo {
		t.Fatalf("expected yahoo provider, got %q", c.Provider.Type)
	}
	if c.Cache.TTL != time.Hour || c.Cache.Backend != CacheMemory {
		t.Fatalf("unexpected cache defaults: %+v", c.Cache)
	}
	if c.Server.Port != 8080 || c.Logger.Level != "info" {
		t.Fatalf("unexpected defaults: port=%d level=%q", c.Server.Port, c.Logger.Level)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := Parse([]byte("server:\n  port: 9090\ncache:\n  ttl: 30m\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Server.Port != 9090 || c.Cache.TTL != 30*time.Minute {
		t.Fatalf("overrides not applied: %+v", c.Server)
	}
	if c.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default lost: %v", c.Server.ShutdownTimeout)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown provider": "provider:\n  type: bloomberg\n",
		"eodhd without key": "provider:\n  type: eodhd\n",
		"bad cache backend": "cache:\n  backend: disk\n",
		"bad port":          "server:\n  port: 70000\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	c, _ := Default()
	env := map[string]string{
		"YOC_PROVIDER":  "eodhd",
		"EODHD_API_KEY": "secret",
		"REDIS_ADDR":    "redis:6379",
		"PORT":          "9000",
	}
	if err := c.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if c.Provider.Type != ProviderEODHD || c.Provider.EODHD.APIKey != "secret" {
		t.Fatalf("provider overrides not applied: %+v", c.Provider)
	}
	if c.Cache.Backend != CacheRedis || c.Cache.Redis.Addr != "redis:6379" {
		t.Fatalf("redis overrides not applied: %+v", c.Cache)
	}
	if c.Server.Port != 9000 {
		t.Fatalf("port override not applied: %d", c.Server.Port)
	}

	bad, _ := Default()
	if err := bad.ApplyEnv(func(k string) string {
		if k == "PORT" {
			return "eighty"
		}
		return ""
	}); err == nil || !strings.Contains(err.Error(), "PORT") {
		t.Fatalf("expected PORT error, got %v", err)
	}
}

func TestLoadSampleFile(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !c.Server.RateLimit.Enabled || c.Provider.RateLimit != 2 {
		t.Fatalf("unexpected sample values: %+v", c.Server.RateLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
