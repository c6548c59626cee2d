package config

import (
	"testing"
	"time"
)

func storeWithDocument(t *testing.T, raw string) *Store {
	t.Helper()

	fsys := &countingFS{files: map[string][]byte{"config.yml": []byte(raw)}}
	store := NewStore(WithSearchPaths("config.yml"), WithFileSystem(fsys))
	if err := store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return store
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()

	store := storeWithDocument(t, "app:\n  name: x\n")

	settings, err := LoadSettings(store, nil)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, settings.Port)
	}
	if settings.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", settings.ShutdownGracePeriod)
	}
	if settings.RateLimitRPS != defaultRateLimitRPS {
		t.Fatalf("unexpected rate limit rps: %v", settings.RateLimitRPS)
	}
	if !settings.EnableRequestLogging {
		t.Fatalf("expected request logging enabled by default")
	}
}

func TestLoadSettingsFromDocument(t *testing.T) {
	t.Parallel()

	store := storeWithDocument(t, `
server:
  port: 9000
  shutdown_grace_period: 5s
  read_header_timeout: 2s
  enable_request_logging: false
  rate_limit:
    rps: 10.5
    burst: 20
`)

	settings, err := LoadSettings(store, nil)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Port != "9000" {
		t.Fatalf("expected port 9000, got %s", settings.Port)
	}
	if settings.ShutdownGracePeriod != 5*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", settings.ShutdownGracePeriod)
	}
	if settings.ReadHeaderTimeout != 2*time.Second {
		t.Fatalf("unexpected read header timeout: %s", settings.ReadHeaderTimeout)
	}
	if settings.EnableRequestLogging {
		t.Fatalf("expected request logging disabled")
	}
	if settings.RateLimitRPS != 10.5 {
		t.Fatalf("unexpected rate limit rps: %v", settings.RateLimitRPS)
	}
	if settings.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit burst: %d", settings.RateLimitBurst)
	}
	// keys outside the server section keep their defaults
	if settings.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected write timeout: %s", settings.WriteTimeout)
	}
}

func TestLoadSettingsCLIOverridesWin(t *testing.T) {
	t.Parallel()

	store := storeWithDocument(t, "server:\n  port: 9000\n")

	port := "7000"
	rps := 3.0
	settings, err := LoadSettings(store, &CLIOverrides{Port: &port, RateLimitRPS: &rps})
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Port != "7000" {
		t.Fatalf("expected CLI port to win, got %s", settings.Port)
	}
	if settings.RateLimitRPS != 3.0 {
		t.Fatalf("expected CLI rps to win, got %v", settings.RateLimitRPS)
	}
}

func TestLoadSettingsIgnoresMalformedValues(t *testing.T) {
	t.Parallel()

	store := storeWithDocument(t, `
server:
  shutdown_grace_period: soon
  rate_limit:
    rps: fast
`)

	settings, err := LoadSettings(store, nil)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("expected malformed duration to keep default, got %s", settings.ShutdownGracePeriod)
	}
	if settings.RateLimitRPS != defaultRateLimitRPS {
		t.Fatalf("expected malformed rps to keep default, got %v", settings.RateLimitRPS)
	}
}
