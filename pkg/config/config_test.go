package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env != EnvDevelopment {
		t.Errorf("expected env %q, got %q", EnvDevelopment, cfg.Env)
	}
	if cfg.Port != 8090 {
		t.Errorf("expected port 8090, got %d", cfg.Port)
	}
	if cfg.APIPrefix != "/api/v1" {
		t.Errorf("unexpected api prefix %q", cfg.APIPrefix)
	}
	if cfg.Board.SavedStatusTTL != 1500*time.Millisecond {
		t.Errorf("unexpected saved status ttl %v", cfg.Board.SavedStatusTTL)
	}
	if cfg.Board.ErrorStatusTTL != 2*time.Second {
		t.Errorf("unexpected error status ttl %v", cfg.Board.ErrorStatusTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("redis must default to disabled")
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("unexpected upstream timeout %v", cfg.Upstream.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("UPSTREAM_BASE_URL", "http://scheduler:8000/")
	t.Setenv("BOARD_SAVED_STATUS_TTL", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.Upstream.BaseURL != "http://scheduler:8000" {
		t.Errorf("trailing slash must be trimmed, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Board.SavedStatusTTL != 250*time.Millisecond {
		t.Errorf("unexpected saved status ttl %v", cfg.Board.SavedStatusTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("", time.Minute); got != time.Minute {
		t.Errorf("empty input: expected fallback, got %v", got)
	}
	if got := parseDuration("nonsense", time.Minute); got != time.Minute {
		t.Errorf("invalid input: expected fallback, got %v", got)
	}
	if got := parseDuration("30s", time.Minute); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
}
