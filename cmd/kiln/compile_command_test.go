package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kiln/internal/history"
	"kiln/internal/testsupport"
)

func TestCompileStreamsOutput(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.RespondOutput("built 3 targets\n", "", 0))
	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint("127.0.0.1", daemon.Port()))

	stdout, _, err := runCLI(t, cfg, "compile", "--", "-p", "core")
	if err != nil {
		t.Fatalf("compile returned error: %v", err)
	}
	if !strings.Contains(stdout, "built 3 targets") {
		t.Fatalf("expected daemon stdout in output, got %q", stdout)
	}

	received := daemon.Received()
	if len(received) != 1 {
		t.Fatalf("expected one command, got %d", len(received))
	}
	if received[0].Command != "compile" {
		t.Fatalf("expected compile command, got %q", received[0].Command)
	}
	if len(received[0].Arguments) != 2 || received[0].Arguments[0] != "-p" || received[0].Arguments[1] != "core" {
		t.Fatalf("unexpected arguments on the wire: %v", received[0].Arguments)
	}
}

func TestCompilePropagatesExitCode(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.RespondOutput("", "compile failed\n", 2))
	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint("127.0.0.1", daemon.Port()))

	stdout, stderr, err := runCLI(t, cfg, "compile")
	if err == nil {
		t.Fatal("expected error for nonzero exit code")
	}
	var exitErr *exitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exitCodeError, got %v", err)
	}
	if exitErr.code != 2 {
		t.Fatalf("expected exit code 2, got %d", exitErr.code)
	}
	if !strings.Contains(stderr, "compile failed") {
		t.Fatalf("expected daemon stderr streamed, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestCompileRecordsHistory(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.RespondExit(0))
	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint("127.0.0.1", daemon.Port()))

	if _, _, err := runCLI(t, cfg, "compile", "--", "-p", "web"); err != nil {
		t.Fatalf("compile returned error: %v", err)
	}

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()
	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(entries))
	}
	if entries[0].Command != "compile" || entries[0].ExitCode != 0 {
		t.Fatalf("unexpected history entry: %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Fatal("expected invocation id in history entry")
	}
}

func TestExecDispatchesArbitraryCommand(t *testing.T) {
	daemon := testsupport.StartDaemon(t, testsupport.RespondExit(0))
	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint("127.0.0.1", daemon.Port()))

	if _, _, err := runCLI(t, cfg, "exec", "status"); err != nil {
		t.Fatalf("exec returned error: %v", err)
	}
	received := daemon.Received()
	if len(received) != 1 || received[0].Command != "status" {
		t.Fatalf("unexpected received commands: %v", received)
	}
}

func TestExecRequiresCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, _, err := runCLI(t, cfg, "exec"); err == nil {
		t.Fatal("expected error when exec is given no command")
	}
}
