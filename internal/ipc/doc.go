// Package ipc implements the client side of the compile daemon's
// chunk-framed command protocol.
//
// A command exchange is strictly synchronous: the client writes the
// argument, directory, and command chunks, then reads stdout/stderr chunks
// until the daemon reports an exit code. Connections are opened per call
// and released on every exit path. Argument lists pass through a
// configurable sanitization policy before anything touches the wire.
//
// Connection failures surface as ordinary errors; receive-side protocol
// violations are carried in Result so callers can distinguish "the remote
// command exited with this code" from "the client could not finish
// receiving". The legacy single-integer contract (sentinel exit code 897)
// remains available for existing callers.
package ipc
