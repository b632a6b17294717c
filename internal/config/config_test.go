package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "5001"); got != "5001" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "5001")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "5001"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetEnvAsSeconds(t *testing.T) {
	const key = "TEST_DELAY_SECONDS"
	defer os.Unsetenv(key)

	_ = os.Unsetenv(key)
	if got := getEnvAsSeconds(key, 30*time.Second); got != 30*time.Second {
		t.Fatalf("default = %v, want 30s", got)
	}

	_ = os.Setenv(key, "5")
	if got := getEnvAsSeconds(key, 30*time.Second); got != 5*time.Second {
		t.Fatalf("got %v, want 5s", got)
	}

	// 非法值回退到默认
	_ = os.Setenv(key, "abc")
	if got := getEnvAsSeconds(key, 30*time.Second); got != 30*time.Second {
		t.Fatalf("invalid value should fall back, got %v", got)
	}
}

func TestLoadReadsDelaysAndSecret(t *testing.T) {
	_ = os.Setenv("REQUEST_DELAY_SECONDS", "1")
	_ = os.Setenv("CYCLE_INTERVAL_SECONDS", "2")
	_ = os.Setenv("ROLLWIKI_SECRET", "s3cret")
	defer func() {
		_ = os.Unsetenv("REQUEST_DELAY_SECONDS")
		_ = os.Unsetenv("CYCLE_INTERVAL_SECONDS")
		_ = os.Unsetenv("ROLLWIKI_SECRET")
	}()

	cfg := Load()
	if cfg.RequestDelay != time.Second || cfg.CycleInterval != 2*time.Second {
		t.Fatalf("delays not loaded correctly: %+v", cfg)
	}
	if cfg.RollWikiSecret != "s3cret" {
		t.Fatalf("RollWikiSecret = %q, want %q", cfg.RollWikiSecret, "s3cret")
	}
	if cfg.FallbackCategory != "Culture" {
		t.Fatalf("FallbackCategory default = %q, want Culture", cfg.FallbackCategory)
	}
}
