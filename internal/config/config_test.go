package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("Load of a missing file should return the zero Config, got %+v", cfg)
	}
}

func TestLoadEmptyPathReturnsZeroConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("Load with an empty path should return the zero Config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astgraph.yaml")
	content := "log_file: /var/log/asterisk/full\ncdr_file: /var/log/asterisk/cdr-csv/Master.csv\ntail_minutes: 30\nuse_memory_pct: 40\nencoding: latin1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFile != "/var/log/asterisk/full" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.TailMinutes != 30 {
		t.Errorf("TailMinutes = %d, want 30", cfg.TailMinutes)
	}
	if cfg.Encoding != "latin1" {
		t.Errorf("Encoding = %q, want %q", cfg.Encoding, "latin1")
	}
}

func TestMergeOverridesOnlyNonZeroFields(t *testing.T) {
	base := Config{LogFile: "/base.log", TailMinutes: 10, Encoding: "utf-8"}
	override := Config{TailMinutes: 20}

	merged := base.Merge(override)
	if merged.LogFile != "/base.log" {
		t.Errorf("LogFile = %q, want the base value preserved", merged.LogFile)
	}
	if merged.TailMinutes != 20 {
		t.Errorf("TailMinutes = %d, want the override value 20", merged.TailMinutes)
	}
	if merged.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want the base value preserved", merged.Encoding)
	}
}
