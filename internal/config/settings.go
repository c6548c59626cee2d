package config

import (
	"fmt"
	"strconv"
	"time"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Settings aggregates the lookup service's own runtime configuration.
// Precedence: CLI flags > configuration document > defaults.
type Settings struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// LoadSettings resolves the service settings from the store's document,
// falling back to defaults for keys the document does not carry, and applies
// CLI overrides last.
func LoadSettings(store *Store, overrides *CLIOverrides) (Settings, error) {
	settings := defaultSettings()

	applyStoreSettings(&settings, store)

	if overrides != nil {
		applyCLIOverrides(&settings, overrides)
	}

	if err := validateSettings(settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// defaultSettings returns a Settings with default values.
func defaultSettings() Settings {
	return Settings{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// applyStoreSettings pulls the server section out of the document through
// dotted lookups. Keys that are absent, null, or of an unexpected type keep
// their defaults.
func applyStoreSettings(settings *Settings, store *Store) {
	if v, ok := asString(store.Get("server.port")); ok && v != "" {
		settings.Port = v
	}
	if d, ok := asDuration(store.Get("server.shutdown_grace_period")); ok {
		settings.ShutdownGracePeriod = d
	}
	if d, ok := asDuration(store.Get("server.read_header_timeout")); ok {
		settings.ReadHeaderTimeout = d
	}
	if d, ok := asDuration(store.Get("server.write_timeout")); ok {
		settings.WriteTimeout = d
	}
	if d, ok := asDuration(store.Get("server.idle_timeout")); ok {
		settings.IdleTimeout = d
	}
	if b, ok := store.Get("server.enable_request_logging").(bool); ok {
		settings.EnableRequestLogging = b
	}
	if v, ok := asFloat(store.Get("server.rate_limit.rps")); ok && v >= 0 {
		settings.RateLimitRPS = v
	}
	if v, ok := asInt(store.Get("server.rate_limit.burst")); ok && v >= 0 {
		settings.RateLimitBurst = v
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(settings *Settings, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		settings.Port = *overrides.Port
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		settings.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		settings.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateSettings validates the final configuration.
func validateSettings(settings Settings) error {
	if settings.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if settings.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must be >= 0")
	}
	if settings.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst must be >= 0")
	}
	return nil
}

// asString accepts strings and integers; YAML parses an unquoted port number
// as an int.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	}
	return "", false
}

func asDuration(v any) (time.Duration, bool) {
	raw, ok := v.(string)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}
