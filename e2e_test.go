//go:build e2e

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var cmdstatsBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "cmdstats-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	cmdstatsBin = filepath.Join(tmp, "cmdstats")
	build := exec.Command("go", "build", "-ldflags", "-X github.com/msalah0e/cmdstats/cmd.version=0.4.0-test", "-o", cmdstatsBin, ".")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build cmdstats: " + err.Error())
	}

	os.Exit(m.Run())
}

// runIn executes the binary with home as an isolated HOME directory.
func runIn(t *testing.T, home string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(cmdstatsBin, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"NO_COLOR=1",
	)

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run cmdstats %v: %v", args, err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

func TestE2E_Version(t *testing.T) {
	out, _, code := runIn(t, t.TempDir(), "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "0.4.0-test") {
		t.Errorf("expected version output to contain '0.4.0-test', got %q", out)
	}
}

func TestE2E_Help(t *testing.T) {
	out, _, code := runIn(t, t.TempDir(), "--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, sub := range []string{"log", "stats", "top", "search", "export"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q", sub)
		}
	}
}

func TestE2E_LogAndTop(t *testing.T) {
	home := t.TempDir()
	for _, line := range []string{"123  git status", "124  git status", "125  ls -la"} {
		if _, errOut, code := runIn(t, home, "log", line); code != 0 {
			t.Fatalf("log %q exited %d: %s", line, code, errOut)
		}
	}

	data, err := os.ReadFile(filepath.Join(home, ".config", "cmdstats", "commands.json"))
	if err != nil {
		t.Fatalf("store not written: %v", err)
	}
	var stored []struct {
		Command   string `json:"command"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &stored); err != nil || len(stored) != 3 {
		t.Fatalf("unexpected store %q: %v", data, err)
	}

	out, _, code := runIn(t, home, "top", "1", "--format", "json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var rows []struct {
		Command  string `json:"command"`
		Count    int    `json:"count"`
		LastUsed string `json:"last_used"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if len(rows) != 1 || rows[0].Command != "git status" || rows[0].Count != 2 {
		t.Fatalf("unexpected top: %+v", rows)
	}
	if rows[0].LastUsed != stored[1].Timestamp {
		t.Errorf("last_used %q, want %q", rows[0].LastUsed, stored[1].Timestamp)
	}
}

func TestE2E_ExportCSVEmpty(t *testing.T) {
	out, _, code := runIn(t, t.TempDir(), "export", "--format", "csv")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out != "command,count,last_used\n" {
		t.Errorf("expected header only, got %q", out)
	}
}

func TestE2E_LogEmptyFails(t *testing.T) {
	_, _, code := runIn(t, t.TempDir(), "log", "  ")
	if code == 0 {
		t.Fatal("expected non-zero exit for an empty history line")
	}
}

func TestE2E_BadFormatFails(t *testing.T) {
	out, errOut, code := runIn(t, t.TempDir(), "stats", "--format", "yaml")
	if code == 0 {
		t.Fatal("expected non-zero exit for unknown format")
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
	if !strings.Contains(errOut, "format") {
		t.Errorf("expected error on stderr, got %q", errOut)
	}
}

func TestE2E_CorruptStoreDegrades(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "cmdstats")
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "commands.json"), []byte("garbage"), 0o644)

	if _, _, code := runIn(t, home, "stats"); code != 0 {
		t.Errorf("stats should degrade on a corrupt store, got exit %d", code)
	}
	if _, _, code := runIn(t, home, "log", "make"); code == 0 {
		t.Error("log should fail on a corrupt store")
	}
}
