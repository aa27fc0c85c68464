package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTable(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	Table(&buf, []string{"#", "Command"}, [][]string{
		{"1", "git status"},
		{"2", "ls"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "  #  Command" {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if lines[2] != "  1  git status" {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"a"}, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty rows, got %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("docker compose up -d", 10); got != "docker ..." {
		t.Errorf("unexpected truncation: %q", got)
	}
	if got := Truncate("ls", 10); got != "ls" {
		t.Errorf("short strings should be unchanged, got %q", got)
	}
}

func TestTruncateMultiByte(t *testing.T) {
	got := Truncate("echo ééé…", 9)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if got != "echo ..." {
		t.Errorf("unexpected truncation: %q", got)
	}
	if got := Truncate("ééééé", 8); got != "éé..." {
		t.Errorf("expected cut on a rune boundary, got %q", got)
	}
}
