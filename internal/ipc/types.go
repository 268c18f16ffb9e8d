package ipc

import (
	"time"
)

// Command names recognized by the compile daemon.
const (
	CommandCompile  = "compile"
	CommandStatus   = "status"
	CommandShutdown = "shutdown"
)

// SentinelExitCode is the reserved exit code reported (in legacy mode) when
// the client could not finish receiving a response. By convention only; a
// remote command could legitimately exit with the same value, which is why
// Result keeps the two apart.
const SentinelExitCode = 897

// Result is the outcome of one command exchange. Exactly one of the two
// variants is meaningful: a completed exchange carries the remote ExitCode
// and a nil Err; a client-side receive failure carries a non-nil Err and a
// zero ExitCode.
type Result struct {
	// ID is the invocation identifier assigned by the client, used to
	// correlate log lines and history rows.
	ID string
	// ExitCode is the exit code the daemon reported for the command.
	ExitCode int
	// Err is the protocol violation that ended the exchange, if any.
	Err error
	// Duration covers the full write-then-read cycle.
	Duration time.Duration
}

// Failed reports whether the exchange ended in a client-side failure rather
// than a remote exit code.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Legacy flattens the result to the single-integer form of the original
// contract: the remote exit code, or SentinelExitCode on a client-side
// receive failure.
func (r Result) Legacy() int {
	if r.Err != nil {
		return SentinelExitCode
	}
	return r.ExitCode
}
