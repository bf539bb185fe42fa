package cfg

import (
	"os"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// set at build time
		t.Logf("Version: %s", version)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FEED_URL", "POLL_INTERVAL", "FETCH_TIMEOUT", "USER_AGENT", "FEED_CONFIG",
		"LEDGER_CAPACITY", "DB_PATH", "LISTEN_ADDR", "BASE_URL", "API_ACCESS_KEY", "TZ", "DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.URL != "https://status.openai.com/history.atom" {
		t.Errorf("Expected default URL, got '%s'", cfg.URL)
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("Expected interval 30s, got %s", cfg.Interval)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %s", cfg.Timeout)
	}
	if cfg.LedgerCapacity != 0 {
		t.Errorf("Expected unbounded ledger, got capacity %d", cfg.LedgerCapacity)
	}
	if cfg.HistoryEnabled() {
		t.Error("Expected history to be disabled by default")
	}
	if cfg.APIEnabled() {
		t.Error("Expected API to be disabled by default")
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParseFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := parse([]string{
		"--url", "https://status.example.com/feed.rss",
		"--interval", "1m",
		"--timeout", "5s",
		"--ledger-capacity", "1000",
		"--db-path", "/tmp/history.db",
		"--listen", ":8080",
		"--api-key", "test-key",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.URL != "https://status.example.com/feed.rss" {
		t.Errorf("Expected URL 'https://status.example.com/feed.rss', got '%s'", cfg.URL)
	}
	if cfg.Interval != time.Minute {
		t.Errorf("Expected interval 1m, got %s", cfg.Interval)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.Timeout)
	}
	if cfg.LedgerCapacity != 1000 {
		t.Errorf("Expected ledger capacity 1000, got %d", cfg.LedgerCapacity)
	}
	if !cfg.HistoryEnabled() {
		t.Error("Expected history to be enabled")
	}
	if !cfg.APIEnabled() {
		t.Error("Expected API to be enabled")
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestParseEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEED_URL", "https://status.example.com/history.atom")
	t.Setenv("POLL_INTERVAL", "45s")

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.URL != "https://status.example.com/history.atom" {
		t.Errorf("Expected URL from environment, got '%s'", cfg.URL)
	}
	if cfg.Interval != 45*time.Second {
		t.Errorf("Expected interval 45s, got %s", cfg.Interval)
	}
}

func TestParseInvalidValues(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"zero interval", []string{"--interval", "0s"}},
		{"negative timeout", []string{"--timeout=-1s"}},
		{"negative ledger capacity", []string{"--ledger-capacity=-5"}},
		{"malformed interval", []string{"--interval", "soon"}},
		{"fractional interval", []string{"--interval", "1500ms"}},
		{"fractional timeout", []string{"--timeout", "2.5s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(tt.args); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}
