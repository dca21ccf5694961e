package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("API_PORT", "")

	cfg := Load()
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreDriverPostgres)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v, want 24h", cfg.JWTExpiration)
	}
	if cfg.APIPort != "3000" {
		t.Errorf("APIPort = %q, want 3000", cfg.APIPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("LOOKUP_CACHE_TTL_SECONDS", "30")

	cfg := Load()
	if !cfg.UsesMemoryStore() {
		t.Errorf("expected memory store, got %q", cfg.StoreDriver)
	}
	if cfg.JWTExpiration != 2*time.Hour {
		t.Errorf("JWTExpiration = %v, want 2h", cfg.JWTExpiration)
	}
	if cfg.LookupCacheTTL != 30*time.Second {
		t.Errorf("LookupCacheTTL = %v, want 30s", cfg.LookupCacheTTL)
	}
}

func TestGetEnvIntFallback(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvInt("SOME_INT", 7); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
	t.Setenv("SOME_INT", "42")
	if got := getEnvInt("SOME_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := &Config{StoreDriver: "mongo", JWTSecret: "secret", RateLimitPerMinute: 10}
	cfg.Validate(zap.NewNop())
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("StoreDriver = %q, want fallback to postgres", cfg.StoreDriver)
	}
}
