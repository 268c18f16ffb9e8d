package main

import (
	"bytes"
	"testing"

	"kiln/internal/config"
	"kiln/internal/testsupport"
)

// runCLI executes the root command against a written config file and
// captures its output streams.
func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	configPath := testsupport.WriteConfigFile(t, cfg)

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
