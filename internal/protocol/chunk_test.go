package protocol_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"kiln/internal/protocol"
)

func TestRoundTrip(t *testing.T) {
	types := []protocol.ChunkType{
		protocol.ChunkArgument,
		protocol.ChunkCommand,
		protocol.ChunkDirectory,
		protocol.ChunkStdout,
		protocol.ChunkStderr,
		protocol.ChunkExit,
	}
	sizes := []int{0, 1, 255, 65536}

	for _, typ := range types {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s_%d", typ, size), func(t *testing.T) {
				payload := bytes.Repeat([]byte{0xAB}, size)
				var buf bytes.Buffer
				if err := protocol.Write(&buf, typ, payload); err != nil {
					t.Fatalf("Write: %v", err)
				}
				chunk, err := protocol.Read(&buf)
				if err != nil {
					t.Fatalf("Read: %v", err)
				}
				if chunk.Type != typ {
					t.Fatalf("type mismatch: got %s want %s", chunk.Type, typ)
				}
				if !bytes.Equal(chunk.Payload, payload) {
					t.Fatalf("payload mismatch: got %d bytes want %d", len(chunk.Payload), len(payload))
				}
			})
		}
	}
}

func TestReadShortHeader(t *testing.T) {
	full := protocol.Encode(protocol.ChunkExit, []byte("0"))
	for cut := 1; cut < 5; cut++ {
		_, err := protocol.Read(bytes.NewReader(full[:cut]))
		if !errors.Is(err, protocol.ErrShortHeader) {
			t.Fatalf("cut=%d: expected ErrShortHeader, got %v", cut, err)
		}
	}
}

func TestReadEmptyStream(t *testing.T) {
	_, err := protocol.Read(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on empty stream, got %v", err)
	}
}

func TestReadUnrecognizedTag(t *testing.T) {
	raw := []byte{0, 0, 0, 0, 'Q'}
	_, err := protocol.Read(bytes.NewReader(raw))
	var perr *protocol.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *protocol.Error for tag 'Q', got %v", err)
	}
	if errors.Is(err, io.EOF) {
		t.Fatal("protocol error must be distinct from EOF")
	}
}

func TestReadTruncatedPayload(t *testing.T) {
	full := protocol.Encode(protocol.ChunkStdout, []byte("hello"))
	_, err := protocol.Read(bytes.NewReader(full[:len(full)-2]))
	var perr *protocol.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *protocol.Error for truncated payload, got %v", err)
	}
}

func TestReadOversizedLength(t *testing.T) {
	raw := []byte{0xFF, 0xFF, 0xFF, 0xFF, 'O'}
	_, err := protocol.Read(bytes.NewReader(raw))
	if !errors.Is(err, protocol.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	buf := protocol.Encode(protocol.ChunkArgument, []byte("abc"))
	want := []byte{0, 0, 0, 3, 'A', 'a', 'b', 'c'}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected encoding: %v", buf)
	}
}

func TestWriteRefusesOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	payload := make([]byte, 16<<20+1)
	err := protocol.Write(&buf, protocol.ChunkStdout, payload)
	if !errors.Is(err, protocol.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written, got %d", buf.Len())
	}
}

func TestZeroLengthPayloadAllowed(t *testing.T) {
	chunk, err := protocol.Read(bytes.NewReader(protocol.Encode(protocol.ChunkDirectory, nil)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if chunk.Type != protocol.ChunkDirectory || len(chunk.Payload) != 0 {
		t.Fatalf("unexpected chunk: %s", chunk)
	}
}
