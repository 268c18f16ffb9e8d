package testsupport

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"kiln/internal/protocol"
)

// ReceivedCommand is one fully parsed inbound command as the daemon saw it.
type ReceivedCommand struct {
	Command   string
	Arguments []string
	Directory string
}

// ResponseFunc writes the daemon's scripted response for one command.
type ResponseFunc func(conn net.Conn, cmd ReceivedCommand)

// FakeDaemon is an in-process TCP listener speaking the chunk protocol,
// used to exercise the client without a real daemon.
type FakeDaemon struct {
	listener net.Listener
	respond  ResponseFunc

	mu       sync.Mutex
	received []ReceivedCommand
}

// StartDaemon starts a fake daemon on 127.0.0.1:0 and registers cleanup.
func StartDaemon(t testing.TB, respond ResponseFunc) *FakeDaemon {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ServeListener(t, listener, respond)
}

// ServeListener runs a fake daemon on an existing listener, for tests that
// need a fixed port (restart scenarios rebind the same address).
func ServeListener(t testing.TB, listener net.Listener, respond ResponseFunc) *FakeDaemon {
	if respond == nil {
		respond = RespondExit(0)
	}
	d := &FakeDaemon{listener: listener, respond: respond}
	go d.serve()
	t.Cleanup(func() {
		_ = listener.Close()
	})
	return d
}

// Close stops the listener. Safe to call more than once.
func (d *FakeDaemon) Close() {
	_ = d.listener.Close()
}

// Addr returns the listener address in host:port form.
func (d *FakeDaemon) Addr() string {
	return d.listener.Addr().String()
}

// Port returns the listener's TCP port.
func (d *FakeDaemon) Port() int {
	return d.listener.Addr().(*net.TCPAddr).Port
}

// Received returns a snapshot of all commands parsed so far.
func (d *FakeDaemon) Received() []ReceivedCommand {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ReceivedCommand, len(d.received))
	copy(out, d.received)
	return out
}

func (d *FakeDaemon) serve() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		go d.handle(conn)
	}
}

func (d *FakeDaemon) handle(conn net.Conn) {
	defer conn.Close()

	cmd, err := readCommand(conn)
	if err != nil {
		return
	}
	d.mu.Lock()
	d.received = append(d.received, cmd)
	d.mu.Unlock()

	d.respond(conn, cmd)
}

// readCommand consumes chunks until the Command chunk that triggers
// execution arrives.
func readCommand(r io.Reader) (ReceivedCommand, error) {
	var cmd ReceivedCommand
	for {
		chunk, err := protocol.Read(r)
		if err != nil {
			return cmd, err
		}
		switch chunk.Type {
		case protocol.ChunkArgument:
			cmd.Arguments = append(cmd.Arguments, string(chunk.Payload))
		case protocol.ChunkDirectory:
			cmd.Directory = string(chunk.Payload)
		case protocol.ChunkCommand:
			cmd.Command = string(chunk.Payload)
			return cmd, nil
		default:
			return cmd, fmt.Errorf("unexpected %s chunk on command stream", chunk.Type)
		}
	}
}

// RespondExit scripts a bare exit-code response.
func RespondExit(code int) ResponseFunc {
	return func(conn net.Conn, _ ReceivedCommand) {
		_ = protocol.Write(conn, protocol.ChunkExit, []byte(strconv.Itoa(code)))
	}
}

// RespondOutput scripts stdout and stderr payloads followed by an exit code.
func RespondOutput(stdout, stderr string, code int) ResponseFunc {
	return func(conn net.Conn, _ ReceivedCommand) {
		if stdout != "" {
			_ = protocol.Write(conn, protocol.ChunkStdout, []byte(stdout))
		}
		if stderr != "" {
			_ = protocol.Write(conn, protocol.ChunkStderr, []byte(stderr))
		}
		_ = protocol.Write(conn, protocol.ChunkExit, []byte(strconv.Itoa(code)))
	}
}

// RespondRaw writes arbitrary bytes, for malformed-stream scenarios.
func RespondRaw(raw []byte) ResponseFunc {
	return func(conn net.Conn, _ ReceivedCommand) {
		_, _ = conn.Write(raw)
	}
}
