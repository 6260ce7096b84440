package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Tools.Read.Enabled || !cfg.Tools.Write.Enabled || !cfg.Tools.Replace.Enabled {
		t.Error("all tools should be enabled by default")
	}
	if cfg.Tools.Read.MaxFileSizeKB != 1024 {
		t.Errorf("read max size = %d, want 1024", cfg.Tools.Read.MaxFileSizeKB)
	}
	if cfg.Replay.ChunkSize != 64 {
		t.Errorf("replay chunk size = %d, want 64", cfg.Replay.ChunkSize)
	}
}

func TestLoadMissingDefaultPathFallsBack(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Tools.Replace.Enabled {
		t.Error("fallback config should have defaults applied")
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing config path should fail")
	}
}

func TestLoadAppliesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "restitch.yaml")
	content := `
workspace:
  root: ` + dir + `
matcher:
  exact_only: true
tools:
  read:
    enabled: true
    max_file_size_kb: 0
replay:
  chunk_size: 16
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Matcher.ExactOnly {
		t.Error("exact_only not applied")
	}
	if cfg.Replay.ChunkSize != 16 {
		t.Errorf("chunk size = %d, want 16", cfg.Replay.ChunkSize)
	}
	if cfg.Tools.Read.MaxFileSizeKB != 1024 {
		t.Errorf("zero max_file_size_kb should reset to default, got %d", cfg.Tools.Read.MaxFileSizeKB)
	}
	if !filepath.IsAbs(cfg.Workspace.Root) {
		t.Errorf("workspace root %q should be absolute", cfg.Workspace.Root)
	}
}
