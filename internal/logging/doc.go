// Package logging assembles the structured slog loggers used across kiln.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger for tests and wiring code that
// cannot fail. Log output defaults to stderr so the compile daemon's
// streamed stdout reaches the caller uncorrupted.
package logging
