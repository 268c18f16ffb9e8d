package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"kiln/internal/history"
	"kiln/internal/testsupport"
)

func TestHistoryListsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	if err := store.Record(context.Background(), history.Invocation{
		ID:        "inv-1",
		Command:   "compile",
		Arguments: []string{"-p", "core"},
		Directory: "/work/app",
		ExitCode:  0,
		Duration:  1500 * time.Millisecond,
		CreatedAt: time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	store.Close()

	stdout, _, err := runCLI(t, cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(stdout, "compile") || !strings.Contains(stdout, "/work/app") {
		t.Fatalf("expected entry in table output: %q", stdout)
	}
}

func TestHistoryEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stdout, _, err := runCLI(t, cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(stdout, "No invocations recorded yet") {
		t.Fatalf("unexpected output: %q", stdout)
	}
}

func TestHistoryDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.History.Enabled = false

	stdout, _, err := runCLI(t, cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(stdout, "History is disabled") {
		t.Fatalf("unexpected output: %q", stdout)
	}
}

func TestHistoryClientFailureMarked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	if err := store.Record(context.Background(), history.Invocation{
		ID:            "inv-2",
		Command:       "compile",
		ExitCode:      897,
		ClientFailure: true,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	store.Close()

	stdout, _, err := runCLI(t, cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(stdout, "897!") {
		t.Fatalf("expected marked client failure in output: %q", stdout)
	}
}
