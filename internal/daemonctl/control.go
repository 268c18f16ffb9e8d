package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"kiln/internal/config"
	"kiln/internal/ipc"
)

const pollInterval = 200 * time.Millisecond

// ErrDaemonNotRunning indicates the daemon endpoint is unreachable.
var ErrDaemonNotRunning = errors.New("daemon not running")

type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
)

// StartResult captures daemon start orchestration state.
type StartResult struct {
	State    StartState
	Launched bool
}

// StopResult captures daemon stop orchestration state.
type StopResult struct {
	WasRunning bool
	ExitCode   int
}

// RestartResult captures stop/start outcomes for daemon restart.
type RestartResult struct {
	WasRunning bool
	Start      StartResult
}

// launchArgs builds the java command line that starts the daemon on the
// configured port.
func launchArgs(cfg *config.Config) []string {
	args := make([]string, 0, len(cfg.JVM.Options)+6)
	if cfg.JVM.MinHeapMB > 0 {
		args = append(args, fmt.Sprintf("-Xms%dm", cfg.JVM.MinHeapMB))
	}
	if cfg.JVM.MaxHeapMB > 0 {
		args = append(args, fmt.Sprintf("-Xmx%dm", cfg.JVM.MaxHeapMB))
	}
	args = append(args, cfg.JVM.Options...)
	args = append(args, "-jar", cfg.Daemon.Jar, "--port", strconv.Itoa(cfg.Daemon.Port))
	return args
}

// Launch starts a detached daemon JVM. A file lock serializes concurrent
// launchers so two clients racing on a cold daemon spawn only one process.
func Launch(cfg *config.Config, logger *slog.Logger) error {
	jar := strings.TrimSpace(cfg.Daemon.Jar)
	if jar == "" {
		return fmt.Errorf("launch daemon: daemon.jar is not configured")
	}
	if _, err := os.Stat(jar); err != nil {
		return fmt.Errorf("launch daemon: jar %s: %w", jar, err)
	}

	javaPath, err := ResolveJava(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LaunchLockPath()), 0o755); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}
	lock := flock.New(cfg.LaunchLockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire launch lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	args := launchArgs(cfg)
	logger.Info("launching daemon",
		slog.String("java", javaPath),
		slog.String("jar", jar),
		slog.Int("port", cfg.Daemon.Port))

	proc := exec.Command(javaPath, args...)
	proc.Stdout = nil
	proc.Stderr = nil
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// WaitForServer polls the daemon until it answers a status probe or the
// timeout elapses.
func WaitForServer(ctx context.Context, client *ipc.Client, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if client.ServerAvailable(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return fmt.Errorf("daemon at %s did not become available within %s", client.Address(), timeout)
}

// EnsureStarted probes the daemon and launches it when absent, then waits
// for it to come up.
func EnsureStarted(ctx context.Context, cfg *config.Config, client *ipc.Client, logger *slog.Logger) (StartResult, error) {
	if client.ServerAvailable(ctx) {
		return StartResult{State: StartStateAlreadyRunning}, nil
	}
	if err := Launch(cfg, logger); err != nil {
		return StartResult{}, err
	}
	timeout := time.Duration(cfg.Daemon.StartupTimeoutSeconds) * time.Second
	if err := WaitForServer(ctx, client, timeout); err != nil {
		return StartResult{}, err
	}
	return StartResult{State: StartStateStarted, Launched: true}, nil
}

// StopAndWait sends the shutdown command and waits until the daemon stops
// answering probes. A connection failure on the shutdown send means the
// daemon is already gone.
func StopAndWait(ctx context.Context, client *ipc.Client, timeout time.Duration) (StopResult, error) {
	if !client.ServerAvailable(ctx) {
		return StopResult{}, ErrDaemonNotRunning
	}

	result, err := client.Exchange(ctx, ipc.CommandShutdown, nil, "", io.Discard, io.Discard)
	if err != nil {
		// Endpoint vanished between probe and send; treat as stopped.
		return StopResult{WasRunning: true}, nil
	}
	stop := StopResult{WasRunning: true, ExitCode: result.ExitCode}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !client.ServerAvailable(ctx) {
			return stop, nil
		}
		select {
		case <-ctx.Done():
			return stop, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return stop, fmt.Errorf("daemon at %s still answering after %s", client.Address(), timeout)
}

// Restart stops the daemon if running, then ensures it is started.
func Restart(ctx context.Context, cfg *config.Config, client *ipc.Client, logger *slog.Logger, stopTimeout time.Duration) (RestartResult, error) {
	_, stopErr := StopAndWait(ctx, client, stopTimeout)
	if stopErr != nil && !errors.Is(stopErr, ErrDaemonNotRunning) {
		return RestartResult{}, stopErr
	}

	start, err := EnsureStarted(ctx, cfg, client, logger)
	if err != nil {
		return RestartResult{}, err
	}
	return RestartResult{
		WasRunning: stopErr == nil,
		Start:      start,
	}, nil
}
