package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0644); err != nil {
		t.Fatalf("error writing test config: %v", err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
log_level: debug
save_dir: /games/civ
catalog:
  engine: postgres
  host: db.local
  port: 5433
  name: saves
  username: civ
  password: hunter2
  dedup_ttl: 1m
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SaveDir != "/games/civ" {
		t.Errorf("SaveDir = %q, want /games/civ", cfg.SaveDir)
	}
	if cfg.Catalog.DedupTTL != time.Minute {
		t.Errorf("Catalog.DedupTTL = %v, want 1m", cfg.Catalog.DedupTTL)
	}
	want := "host=db.local port=5433 dbname=saves user=civ password=hunter2 sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() want = %s, got = %s", want, got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Catalog.Engine != "sqlite" || cfg.Catalog.Filename != "civsave.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Catalog.DedupTTL != 10*time.Minute {
		t.Errorf("Catalog.DedupTTL = %v, want 10m", cfg.Catalog.DedupTTL)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := writeConfig(t, "catalog:\n  host: db.local\n")
	t.Setenv("CIVSAVE_CATALOG_HOST", "override.local")
	t.Setenv("CIVSAVE_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}
	if cfg.Catalog.Host != "override.local" {
		t.Errorf("Catalog.Host = %q, want override.local", cfg.Catalog.Host)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := writeConfig(t, "catalog: [unterminated\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Errorf("LoadConfig() expected an error for a malformed file")
	}
}

func TestConfig_QualifiedPath(t *testing.T) {
	cfg := &Config{configDir: "/etc/civsave"}
	tests := []struct {
		name string
		want string
	}{
		{name: "civsave.db", want: "/etc/civsave/civsave.db"},
		{name: "logs/civsave.log", want: "/etc/civsave/logs/civsave.log"},
		{name: "/var/lib/civsave.db", want: "/var/lib/civsave.db"},
	}
	for _, tt := range tests {
		if got := cfg.QualifiedPath(tt.name); got != tt.want {
			t.Errorf("QualifiedPath(%q) want = %s, got = %s", tt.name, tt.want, got)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{configDir: dir, LogLevel: "warn", LogFilePath: "civsave.log"}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() returned an unexpected error: %v", err)
	}
	if diff := cmp.Diff(logrus.WarnLevel, logger.Level); diff != "" {
		t.Errorf("logger level mismatch, diff:\n%s", diff)
	}

	logger.Info("dropped")
	logger.Warn("kept")
	contents, err := os.ReadFile(filepath.Join(dir, "civsave.log"))
	if err != nil {
		t.Fatalf("error reading log file: %v", err)
	}
	if !strings.Contains(string(contents), "kept") || strings.Contains(string(contents), "dropped") {
		t.Errorf("unexpected log file contents:\n%s", contents)
	}

	if _, err := NewLogger(&Config{LogLevel: "loud"}); err == nil {
		t.Errorf("NewLogger() expected an error for an unknown level")
	}
}
