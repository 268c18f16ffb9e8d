package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"kiln/internal/history"
)

func TestStatusLinePlain(t *testing.T) {
	line := statusLine("Daemon", statusOK, "Running", false)
	if !strings.Contains(line, "Daemon:") || !strings.Contains(line, "[OK] Running") {
		t.Fatalf("unexpected status line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("plain line carries ANSI codes: %q", line)
	}
}

func TestStatusLineColorized(t *testing.T) {
	line := statusLine("Java", statusError, "not found", true)
	if !strings.HasPrefix(line, "\x1b[31m") || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected red wrapping: %q", line)
	}
	if !strings.Contains(line, "[ERROR] not found") {
		t.Fatalf("unexpected status line: %q", line)
	}
}

func TestStatusLineOmitsEmptyDetail(t *testing.T) {
	line := statusLine("History", statusInfo, "", false)
	if !strings.HasSuffix(line, "[INFO]") {
		t.Fatalf("expected bare state tag: %q", line)
	}
}

func TestSectionHeader(t *testing.T) {
	if got := sectionHeader("Daemon", false); got != "== Daemon ==" {
		t.Fatalf("unexpected header: %q", got)
	}
	colored := sectionHeader("Daemon", true)
	if !strings.HasPrefix(colored, ansiBlue) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected blue wrapping: %q", colored)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("expected no color for a non-terminal writer")
	}
}

func TestRenderHistoryTable(t *testing.T) {
	entries := []history.Invocation{
		{
			ID:        "inv-1",
			Command:   "compile",
			Arguments: []string{"-p", "core"},
			Directory: "/work/app",
			ExitCode:  0,
			Duration:  1500 * time.Millisecond,
			CreatedAt: time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:            "inv-2",
			Command:       "compile",
			ExitCode:      897,
			ClientFailure: true,
			Duration:      5 * time.Millisecond,
			CreatedAt:     time.Date(2026, 4, 2, 9, 31, 0, 0, time.UTC),
		},
	}

	out := renderHistoryTable(entries)
	for _, want := range []string{"When", "Command", "Exit", "Duration", "compile", "-p core", "/work/app", "897!", "1.5s", "5ms"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
}
