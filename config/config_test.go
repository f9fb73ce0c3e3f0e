package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty port",
			mutate: func(cfg *Config) {
				cfg.Port = " "
			},
			wantErr: "port",
		},
		{
			name: "unknown backend",
			mutate: func(cfg *Config) {
				cfg.Backend = "selenium"
			},
			wantErr: "backend",
		},
		{
			name: "zero navigation timeout",
			mutate: func(cfg *Config) {
				cfg.NavigationTimeout = 0
			},
			wantErr: "navigation timeout",
		},
		{
			name: "negative content timeout",
			mutate: func(cfg *Config) {
				cfg.ContentTimeout = -1 * time.Second
			},
			wantErr: "content timeout",
		},
		{
			name: "empty url marker",
			mutate: func(cfg *Config) {
				cfg.URLMarker = ""
			},
			wantErr: "url marker",
		},
		{
			name: "missing card selector",
			mutate: func(cfg *Config) {
				cfg.Selectors.ReviewCard = ""
			},
			wantErr: "review card",
		},
		{
			name: "bad log level",
			mutate: func(cfg *Config) {
				cfg.LogLevel = "trace"
			},
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.NavigationTimeout != 60*time.Second || cfg.ContentTimeout != 30*time.Second {
		t.Fatalf("timeouts = %s/%s, want 60s/30s", cfg.NavigationTimeout, cfg.ContentTimeout)
	}
	if cfg.Addr() != ":3001" {
		t.Fatalf("addr = %q, want :3001", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8085")
	t.Setenv("SCRAPER_BACKEND", "Static")
	t.Setenv("SCRAPER_NAV_TIMEOUT", "45s")
	t.Setenv("SCRAPER_CONTENT_TIMEOUT", "1500")
	t.Setenv("SCRAPER_HEADLESS", "false")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8085" {
		t.Fatalf("port = %q, want 8085", cfg.Port)
	}
	if cfg.Backend != BackendStatic {
		t.Fatalf("backend = %q, want static", cfg.Backend)
	}
	if cfg.NavigationTimeout != 45*time.Second {
		t.Fatalf("navigation timeout = %s, want 45s", cfg.NavigationTimeout)
	}
	if cfg.ContentTimeout != 1500*time.Millisecond {
		t.Fatalf("content timeout = %s, want 1.5s", cfg.ContentTimeout)
	}
	if cfg.Headless {
		t.Fatalf("headless should be false")
	}
}

func TestLoadFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SCRAPER_METRICS", "sometimes")

	if _, err := LoadFromEnv(); err == nil || !strings.Contains(err.Error(), "SCRAPER_METRICS") {
		t.Fatalf("expected SCRAPER_METRICS error, got %v", err)
	}
}

func TestEnvStringIgnoresBlank(t *testing.T) {
	t.Setenv("SCRAPER_URL_MARKER", "   ")

	if _, ok := EnvString("SCRAPER_URL_MARKER"); ok {
		t.Fatalf("blank value should be treated as unset")
	}
}
