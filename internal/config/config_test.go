package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// noEnvFile points Load at a .env path that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "payoff.yaml", "{}\n"), noEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	g := cfg.Grid.ToGrid()
	if !g.LowerFactor.Equal(decimal.NewFromFloat(0.85)) || !g.UpperFactor.Equal(decimal.NewFromFloat(1.15)) {
		t.Errorf("grid factors = %s..%s", g.LowerFactor, g.UpperFactor)
	}
	if cfg.Cache.Backend != CacheMemory || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeFile(t, "payoff.yaml", strings.Join([]string{
		"server:",
		"  port: \"9000\"",
		"  request_timeout: 5s",
		"grid:",
		"  lower_factor: 0.5",
		"  upper_factor: 1.5",
		"limits:",
		"  max_lots: 25",
		"log:",
		"  level: debug",
	}, "\n"))

	t.Setenv("PAYOFF_GRID_STEP", "0.5")
	t.Setenv("PAYOFF_RATE_LIMIT_ENABLED", "false")
	t.Setenv("PORT", "7070")

	cfg, err := Load(path, noEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("PORT should override file, got %q", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Grid.LowerFactor != 0.5 || cfg.Grid.Step != 0.5 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.Limits.MaxLots != 25 || cfg.Limits.Limiter().MaxLots != 25 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limit should be disabled by env")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	env := writeFile(t, ".env", "PAYOFF_CACHE_BACKEND=none\n")
	t.Cleanup(func() { os.Unsetenv("PAYOFF_CACHE_BACKEND") })

	cfg, err := Load(writeFile(t, "payoff.yaml", "{}\n"), env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("cache backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"inverted grid", "grid:\n  lower_factor: 1.2\n  upper_factor: 1.1\n"},
		{"redis without url", "cache:\n  backend: redis\n"},
		{"unknown backend", "cache:\n  backend: memcached\n"},
		{"zero burst", "rate_limit:\n  enabled: true\n  burst: 0\n"},
		{"zero batch", "batch:\n  max_items: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "payoff.yaml", tt.yaml), noEnvFile(t)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t)); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
