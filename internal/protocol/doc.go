// Package protocol implements the chunk framing used between the kiln CLI
// and the compile daemon.
//
// Every message on the wire is a chunk: a 4-byte big-endian payload length,
// a single type tag byte, then the payload verbatim. Argument, command,
// directory, and exit payloads are UTF-8 text; stdout and stderr payloads
// are opaque bytes. Tag values mirror the daemon's constants exactly, so
// changing them breaks interoperability.
//
// Decoding is strict: short reads and unrecognized tags are errors rather
// than best-effort truncations, which keeps a desynchronized stream from
// being misread as data.
package protocol
