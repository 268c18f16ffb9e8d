package ipc

import (
	"fmt"
	"io"
	"path/filepath"

	"kiln/internal/protocol"
)

// writeCommand emits the chunk sequence for one outgoing command: one
// Argument chunk per argument, exactly one Directory chunk, then exactly
// one Command chunk. The daemon treats the Command chunk as the trigger to
// begin execution, so this order is a protocol contract.
func writeCommand(w io.Writer, name string, args []string, dir string) error {
	for _, arg := range args {
		if err := protocol.Write(w, protocol.ChunkArgument, []byte(arg)); err != nil {
			return fmt.Errorf("write argument chunk: %w", err)
		}
	}
	if err := protocol.Write(w, protocol.ChunkDirectory, []byte(dir)); err != nil {
		return fmt.Errorf("write directory chunk: %w", err)
	}
	if err := protocol.Write(w, protocol.ChunkCommand, []byte(name)); err != nil {
		return fmt.Errorf("write command chunk: %w", err)
	}
	return nil
}

// CanonicalWorkingDir resolves dir to its canonical absolute form: symlinks
// resolved, relative segments collapsed, trailing separators dropped. An
// empty dir resolves relative to the process working directory.
func CanonicalWorkingDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory %q: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize working directory %q: %w", abs, err)
	}
	return resolved, nil
}
