package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/promptflow/internal/config"
	"github.com/JaimeStill/promptflow/internal/infrastructure"
)

func testInfra(t *testing.T) (*config.Config, *infrastructure.Infrastructure) {
	t.Helper()
	t.Chdir(t.TempDir())

	cfg := &config.Config{}
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.ConnTimeout = "200ms"
	cfg.Storage.Directory = filepath.Join(t.TempDir(), "images")
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.NewWithWriter(cfg, &strings.Builder{})
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}
	return cfg, infra
}

func TestHealthAndReadiness(t *testing.T) {
	_, infra := testInfra(t)
	router := buildRouter(infra)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		return rec
	}

	if rec := get("/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}

	if rec := get("/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want 503", rec.Code)
	}

	infra.Lifecycle.WaitForStartup()
	if rec := get("/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz after startup = %d, want 200", rec.Code)
	}
}

func TestModulesMount(t *testing.T) {
	cfg, infra := testInfra(t)

	modules, err := NewModules(infra, cfg)
	if err != nil {
		t.Fatalf("NewModules() error = %v", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)

	got := strings.Join(router.Prefixes(), ",")
	if got != "/api,/static" {
		t.Errorf("prefixes = %s, want /api,/static", got)
	}
}
