package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICEPRO_STATE_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("unexpected default base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.API.Timeout)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVICEPRO_API_URL", "https://api.servicepro.example/api")
	t.Setenv("SERVICEPRO_APP_ENV", "prod")
	t.Setenv("SERVICEPRO_STATE_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.servicepro.example/api" {
		t.Fatalf("override not applied: %q", cfg.API.BaseURL)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected prod env")
	}
}

func TestStateDirFallback(t *testing.T) {
	var s StateConfig
	if err := s.ensureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if s.Dir == "" {
		t.Fatalf("expected a resolved state dir")
	}
}
