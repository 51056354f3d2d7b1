package infrastructure_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/promptflow/internal/config"
	"github.com/JaimeStill/promptflow/internal/infrastructure"
)

func testConfig(t *testing.T, level string) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())

	cfg := &config.Config{LogLevel: level}
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.ConnTimeout = "200ms"
	cfg.Storage.Directory = filepath.Join(t.TempDir(), "images")

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func TestNewWiresSystems(t *testing.T) {
	cfg := testConfig(t, "info")

	var buf bytes.Buffer
	infra, err := infrastructure.NewWithWriter(cfg, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Database == nil || infra.Storage == nil {
		t.Fatalf("missing system: %+v", infra)
	}
}

func TestLoggerLevel(t *testing.T) {
	cfg := testConfig(t, "warn")

	var buf bytes.Buffer
	infra, err := infrastructure.NewWithWriter(cfg, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	infra.Logger.Info("hidden")
	infra.Logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestStartReportsUnreachableDatabase(t *testing.T) {
	cfg := testConfig(t, "error")

	var buf bytes.Buffer
	infra, err := infrastructure.NewWithWriter(cfg, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if infra.Lifecycle.Ready() {
		t.Error("lifecycle should not be ready with an unreachable database")
	}
	if infra.Lifecycle.StartupErr() == nil {
		t.Error("expected a startup error")
	}

	if err := infra.Lifecycle.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
