package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ChunkType identifies the payload carried by one wire chunk. The tag byte
// values are a shared convention with the daemon and must not change.
type ChunkType byte

const (
	ChunkArgument  ChunkType = 'A'
	ChunkCommand   ChunkType = 'C'
	ChunkDirectory ChunkType = 'D'
	ChunkStdout    ChunkType = 'O'
	ChunkStderr    ChunkType = 'E'
	ChunkExit      ChunkType = 'X'
)

// headerLen is the fixed chunk header size: 4-byte big-endian payload length
// followed by the 1-byte type tag.
const headerLen = 5

// maxPayloadBytes bounds decode-side allocation on a corrupt length field.
// The original wire contract carries no limit; this is a hardening addition.
const maxPayloadBytes = 16 << 20

var (
	ErrShortHeader     = errors.New("protocol: short chunk header")
	ErrPayloadTooLarge = errors.New("protocol: chunk payload too large")
)

// Error reports data from the wire that violates the chunk contract. It is
// distinct from I/O errors so callers can tell a broken peer from a broken
// connection.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "protocol: " + e.Reason
}

// Chunk is the atomic wire unit.
type Chunk struct {
	Type    ChunkType
	Payload []byte
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s(%d bytes)", c.Type, len(c.Payload))
}

// Valid reports whether t is one of the six recognized chunk types.
func (t ChunkType) Valid() bool {
	switch t {
	case ChunkArgument, ChunkCommand, ChunkDirectory, ChunkStdout, ChunkStderr, ChunkExit:
		return true
	}
	return false
}

func (t ChunkType) String() string {
	switch t {
	case ChunkArgument:
		return "argument"
	case ChunkCommand:
		return "command"
	case ChunkDirectory:
		return "directory"
	case ChunkStdout:
		return "stdout"
	case ChunkStderr:
		return "stderr"
	case ChunkExit:
		return "exit"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Encode renders one chunk as header plus payload. No terminator, no
// padding, no escaping.
func Encode(t ChunkType, payload []byte) []byte {
	buf := make([]byte, headerLen+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(payload)))
	buf[4] = byte(t)
	copy(buf[headerLen:], payload)
	return buf
}

// Write encodes one chunk to w. The payload cap applies on both
// directions of the stream: a chunk too large for Read to accept is
// refused here before any bytes hit the wire.
func Write(w io.Writer, t ChunkType, payload []byte) error {
	if uint64(len(payload)) > maxPayloadBytes {
		return ErrPayloadTooLarge
	}
	_, err := w.Write(Encode(t, payload))
	return err
}

// Read decodes exactly one chunk from r. A stream that ends inside the
// header or the payload is an error; an unrecognized type tag is a
// *Error, never silently ignored. Decoding is total: every byte sequence
// either yields a valid chunk or a classified failure.
func Read(r io.Reader) (Chunk, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Chunk{}, ErrShortHeader
		}
		return Chunk{}, err
	}

	length := binary.BigEndian.Uint32(header[0:4])
	tag := ChunkType(header[4])
	if !tag.Valid() {
		return Chunk{}, &Error{Reason: fmt.Sprintf("unrecognized chunk type 0x%02x", header[4])}
	}
	if length > maxPayloadBytes {
		return Chunk{}, ErrPayloadTooLarge
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Chunk{}, &Error{Reason: fmt.Sprintf("truncated %s payload: want %d bytes", tag, length)}
			}
			return Chunk{}, err
		}
	}
	return Chunk{Type: tag, Payload: payload}, nil
}
