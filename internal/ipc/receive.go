package ipc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"kiln/internal/protocol"
)

// receive demultiplexes response chunks until an Exit chunk arrives.
// StdOut and StdErr payloads go to the supplied sinks; the Exit payload is
// the command's exit code. Anything else on this direction of the stream —
// codec failures, outbound-only chunk types, a non-numeric exit payload —
// ends the exchange as a client-side failure.
func receive(r io.Reader, stdout, stderr io.Writer) (int, error) {
	for {
		chunk, err := protocol.Read(r)
		if err != nil {
			return 0, fmt.Errorf("read response chunk: %w", err)
		}
		switch chunk.Type {
		case protocol.ChunkStdout:
			if _, err := stdout.Write(chunk.Payload); err != nil {
				return 0, fmt.Errorf("write stdout sink: %w", err)
			}
		case protocol.ChunkStderr:
			if _, err := stderr.Write(chunk.Payload); err != nil {
				return 0, fmt.Errorf("write stderr sink: %w", err)
			}
		case protocol.ChunkExit:
			code, err := strconv.Atoi(strings.TrimSpace(string(chunk.Payload)))
			if err != nil {
				return 0, &protocol.Error{Reason: fmt.Sprintf("non-numeric exit payload %q", chunk.Payload)}
			}
			return code, nil
		default:
			return 0, &protocol.Error{Reason: fmt.Sprintf("unexpected %s chunk in response stream", chunk.Type)}
		}
	}
}
