package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sources.LottolyzerURL != DefaultLottolyzerURL {
		t.Fatalf("unexpected lottolyzer url: %s", cfg.Sources.LottolyzerURL)
	}
	if cfg.HistoryFile != "data/history.csv" {
		t.Fatalf("unexpected history file: %s", cfg.HistoryFile)
	}
	if cfg.HTTPTimeoutSeconds != 15 {
		t.Fatalf("unexpected timeout: %d", cfg.HTTPTimeoutSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "history_file: /tmp/custom.csv\nhttp_timeout_seconds: 30\n" +
		"sources:\n  lottolyzer_url: http://example.test/marksix\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("MARKSIX_HISTORY_FILE", "/tmp/env.csv")
	t.Setenv("MARKSIX_SQLITE_PATH", "/tmp/archive.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sources.LottolyzerURL != "http://example.test/marksix" {
		t.Fatalf("file value not applied: %s", cfg.Sources.LottolyzerURL)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Fatalf("file value not applied: %d", cfg.HTTPTimeoutSeconds)
	}
	if cfg.HistoryFile != "/tmp/env.csv" {
		t.Fatalf("env override not applied: %s", cfg.HistoryFile)
	}
	if cfg.Database.SQLitePath != "/tmp/archive.db" {
		t.Fatalf("env override not applied: %s", cfg.Database.SQLitePath)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.HistoryFile = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty history_file")
	}
}
