package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvString returns the trimmed value of key and whether it was set.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvInt parses key as an integer.
func EnvInt(key string) (int, bool, error) {
	value, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, true, nil
}

// EnvBool parses key with strconv.ParseBool.
func EnvBool(key string) (bool, bool, error) {
	value, ok := EnvString(key)
	if !ok {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, true, nil
}

// EnvDuration parses key as a Go duration. A bare integer is read as milliseconds.
func EnvDuration(key string) (time.Duration, bool, error) {
	value, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, true, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, true, nil
}

// LoadFromEnv applies environment overrides on top of DefaultConfig.
func LoadFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if v, ok := EnvString("SERVICE_NAME"); ok {
		cfg.ServiceName = v
	}
	if v, ok := EnvString("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := EnvString("SCRAPER_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := EnvString("PLAYWRIGHT_EXECUTABLE_PATH"); ok {
		cfg.ExecutablePath = v
	}
	if v, ok := EnvString("SCRAPER_USER_AGENT"); ok {
		cfg.UserAgent = v
	}
	if v, ok := EnvString("SCRAPER_URL_MARKER"); ok {
		cfg.URLMarker = v
	}
	if v, ok := EnvString("SCRAPER_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := EnvString("ZIPKIN_ENDPOINT"); ok {
		cfg.ZipkinEndpoint = v
	}
	if v, ok := EnvString("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SCRAPER_HEADLESS", &cfg.Headless},
		{"SCRAPER_INSTALL_BROWSERS", &cfg.InstallBrowsers},
		{"SCRAPER_METRICS", &cfg.MetricsEnabled},
	}
	for _, b := range bools {
		v, ok, err := EnvBool(b.key)
		if err != nil {
			return nil, err
		}
		if ok {
			*b.dst = v
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SCRAPER_NAV_TIMEOUT", &cfg.NavigationTimeout},
		{"SCRAPER_CONTENT_TIMEOUT", &cfg.ContentTimeout},
		{"SCRAPER_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok, err := EnvDuration(d.key)
		if err != nil {
			return nil, err
		}
		if ok {
			*d.dst = v
		}
	}

	return cfg, nil
}
