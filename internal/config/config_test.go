package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.SnapshotInterval != 100 {
		t.Errorf("snapshot interval %d, want 100", cfg.SnapshotInterval)
	}
	if cfg.ScanChunkSize != 64*1024 {
		t.Errorf("scan chunk size %d, want 65536", cfg.ScanChunkSize)
	}
	if cfg.LargeFileThreshold != 1024*1024 {
		t.Errorf("large file threshold %d, want 1048576", cfg.LargeFileThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstone.toml")
	content := "snapshot_interval = 25\ntab_width = 8\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SnapshotInterval != 25 {
		t.Errorf("snapshot interval %d, want 25", cfg.SnapshotInterval)
	}
	if cfg.TabWidth != 8 {
		t.Errorf("tab width %d, want 8", cfg.TabWidth)
	}
	// Unspecified keys keep their defaults.
	if cfg.ScanChunkSize != Default().ScanChunkSize {
		t.Errorf("scan chunk size %d, want default", cfg.ScanChunkSize)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("snapshot_interval = = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.toml")
	if err := os.WriteFile(path, []byte("tab_width = -1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("negative tab_width should error")
	}
}
