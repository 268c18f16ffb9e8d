package ipc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"kiln/internal/config"
	"kiln/internal/logging"
)

// Options describes client construction parameters.
type Options struct {
	// Address is the daemon endpoint in host:port form.
	Address string
	// ConnectTimeout bounds the TCP dial. Zero disables the bound.
	ConnectTimeout time.Duration
	// IOTimeout bounds the whole write-then-read exchange. The wire
	// contract mandates no timeout; zero (the default) blocks until the
	// daemon answers.
	IOTimeout time.Duration
	// Policy filters arguments before transmission.
	Policy Policy
	// LegacySentinel makes Run and Send report client-side receive
	// failures as SentinelExitCode instead of an error.
	LegacySentinel bool
	Logger         *slog.Logger
}

// Client dispatches commands to the compile daemon. Each call opens a fresh
// connection and closes it before returning, so ServerAvailable always
// measures current protocol liveness rather than a stale TCP handshake.
// A Client carries no mutable state and is safe to share, but the protocol
// itself allows only one outstanding command per connection.
type Client struct {
	opts Options
}

// New constructs a Client. A nil logger is replaced with a no-op one.
func New(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Client{opts: opts}
}

// NewFromConfig builds a client bound to the configured daemon endpoint.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	policy, err := PolicyFromName(cfg.Client.ArgumentPolicy)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Address:        cfg.Address(),
		ConnectTimeout: time.Duration(cfg.Daemon.ConnectTimeoutSeconds) * time.Second,
		IOTimeout:      time.Duration(cfg.Daemon.IOTimeoutSeconds) * time.Second,
		Policy:         policy,
		LegacySentinel: cfg.Client.LegacySentinel,
		Logger:         logger,
	}), nil
}

// Address returns the daemon endpoint this client dials.
func (c *Client) Address() string {
	return c.opts.Address
}

// Run dispatches the fixed compile command and returns its exit code.
// Connection failures propagate as errors; in legacy mode a client-side
// receive failure is reported as SentinelExitCode.
func (c *Client) Run(ctx context.Context, args []string, dir string, stdout, stderr io.Writer) (int, error) {
	return c.Send(ctx, CommandCompile, args, dir, stdout, stderr)
}

// Send dispatches an arbitrary daemon command. Same contract as Run.
func (c *Client) Send(ctx context.Context, command string, args []string, dir string, stdout, stderr io.Writer) (int, error) {
	result, err := c.Exchange(ctx, command, args, dir, stdout, stderr)
	if err != nil {
		return 0, err
	}
	if result.Err != nil && !c.opts.LegacySentinel {
		return 0, fmt.Errorf("receive response for %q: %w", command, result.Err)
	}
	return result.Legacy(), nil
}

// Exchange performs one full write-then-read cycle and returns the
// non-flattened Result. The returned error covers connection-level
// failures only (dial, write, unreachable endpoint); receive-side protocol
// violations land in Result.Err so callers can tell the two apart.
func (c *Client) Exchange(ctx context.Context, command string, args []string, dir string, stdout, stderr io.Writer) (Result, error) {
	invocationID := uuid.NewString()
	logger := c.opts.Logger.With(
		slog.String("invocation_id", invocationID),
		slog.String("command", command),
	)

	sanitized := c.opts.Policy.Apply(args)
	canonical, err := CanonicalWorkingDir(dir)
	if err != nil {
		return Result{}, err
	}

	dialer := net.Dialer{Timeout: c.opts.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.opts.Address)
	if err != nil {
		return Result{}, fmt.Errorf("connect to daemon at %s: %w", c.opts.Address, err)
	}
	defer conn.Close()

	if c.opts.IOTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(c.opts.IOTimeout)); err != nil {
			return Result{}, fmt.Errorf("set connection deadline: %w", err)
		}
	}

	start := time.Now()
	logger.Debug("dispatching command",
		slog.Int("arguments", len(sanitized)),
		slog.String("working_dir", canonical))

	if err := writeCommand(conn, command, sanitized, canonical); err != nil {
		return Result{}, fmt.Errorf("send %q command: %w", command, err)
	}

	result := Result{ID: invocationID}
	code, recvErr := receive(conn, stdout, stderr)
	result.Duration = time.Since(start)
	if recvErr != nil {
		result.Err = recvErr
		logger.Warn("command exchange failed",
			slog.Any("error", recvErr),
			slog.Duration("duration", result.Duration))
		return result, nil
	}

	result.ExitCode = code
	logger.Debug("command completed",
		slog.Int("exit_code", code),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// ServerAvailable probes the daemon with an argument-free status command.
// It reports true only when the full round trip succeeds with exit code 0;
// every failure mode, including refused or timed-out connections, maps to
// false. It never returns an error.
func (c *Client) ServerAvailable(ctx context.Context) bool {
	result, err := c.Exchange(ctx, CommandStatus, nil, "", io.Discard, io.Discard)
	if err != nil {
		return false
	}
	return result.Err == nil && result.ExitCode == 0
}
