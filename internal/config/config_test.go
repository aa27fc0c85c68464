package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.UI.Color {
		t.Error("default color should be true")
	}
	if cfg.Store.MaxRecords != 10000 {
		t.Errorf("expected max_records 10000, got %d", cfg.Store.MaxRecords)
	}
	if cfg.Report.Format != "text" {
		t.Errorf("expected report format 'text', got %q", cfg.Report.Format)
	}
	if cfg.Report.Top != 10 {
		t.Errorf("expected top 10, got %d", cfg.Report.Top)
	}
	if cfg.Report.Limit != 20 {
		t.Errorf("expected limit 20, got %d", cfg.Report.Limit)
	}
	if cfg.Log.IgnoreSpace {
		t.Error("default ignore_space should be false")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != filepath.Join("/tmp/test-xdg", "cmdstats") {
		t.Errorf("expected /tmp/test-xdg/cmdstats, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "cmdstats")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")

	cfg := Default()
	if got := cfg.DataDir(); got != ConfigDir() {
		t.Errorf("expected data dir to default to %q, got %q", ConfigDir(), got)
	}

	cfg.Store.Dir = "/var/tmp/stats"
	if got := cfg.DataDir(); got != "/var/tmp/stats" {
		t.Errorf("expected /var/tmp/stats, got %q", got)
	}

	home, _ := os.UserHomeDir()
	cfg.Store.Dir = "~/.command_stats"
	if got := cfg.DataDir(); got != filepath.Join(home, ".command_stats") {
		t.Errorf("expected ~ to expand, got %q", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Store.MaxRecords = 500
	cfg.Log.Ignore = []string{"ls", "cd"}
	cfg.Report.Format = "csv"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.Store.MaxRecords != 500 {
		t.Errorf("expected max_records 500, got %d", loaded.Store.MaxRecords)
	}
	if len(loaded.Log.Ignore) != 2 || loaded.Log.Ignore[1] != "cd" {
		t.Errorf("unexpected ignore list: %v", loaded.Log.Ignore)
	}
	if loaded.Report.Format != "csv" {
		t.Errorf("expected format csv after load, got %q", loaded.Report.Format)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	os.MkdirAll(filepath.Join(tmpDir, "cmdstats"), 0o755)
	os.WriteFile(filepath.Join(tmpDir, "cmdstats", "config.toml"), []byte("[ui]\ncolor = false\n"), 0o644)

	cfg := Load()
	if cfg.UI.Color {
		t.Error("expected color false from file")
	}
	if cfg.Report.Top != 10 {
		t.Errorf("expected default top 10, got %d", cfg.Report.Top)
	}
	if cfg.Store.MaxRecords != 10000 {
		t.Errorf("expected default max_records, got %d", cfg.Store.MaxRecords)
	}
}

func TestLoadMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	os.MkdirAll(filepath.Join(tmpDir, "cmdstats"), 0o755)
	os.WriteFile(filepath.Join(tmpDir, "cmdstats", "config.toml"), []byte("[report\ntop = = 3"), 0o644)

	cfg := Load()
	if cfg.Report.Top != 10 {
		t.Errorf("malformed config should fall back to defaults, got top %d", cfg.Report.Top)
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "cmdstats", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}
