package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/daemonctl"
	"kiln/internal/history"
	"kiln/internal/ipc"
)

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "compile [flags] [-- compiler args...]",
		Short: "Dispatch a compile to the daemon and stream its output",
		Long: `Sends the compile command with the given arguments to the daemon,
streams remote stdout and stderr to the local terminal, and exits with the
remote exit code. When daemon.auto_start is enabled and the daemon is not
reachable, it is launched first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(ctx, cmd, ipc.CommandCompile, args, workDir)
		},
	}
	cmd.Flags().StringVarP(&workDir, "dir", "d", "", "Working directory sent to the daemon (default: current directory)")
	return cmd
}

func newExecCommand(ctx *commandContext) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Dispatch an arbitrary daemon command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(ctx, cmd, args[0], args[1:], workDir)
		},
	}
	cmd.Flags().StringVarP(&workDir, "dir", "d", "", "Working directory sent to the daemon (default: current directory)")
	return cmd
}

// dispatch runs one daemon command end to end: optional auto-start, the wire
// exchange with output streamed to the terminal, a best-effort history
// record, and exit code propagation.
func dispatch(ctx *commandContext, cmd *cobra.Command, command string, args []string, workDir string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	client, err := ctx.client()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger()

	if cfg.Daemon.AutoStart {
		if _, err := daemonctl.EnsureStarted(cmd.Context(), cfg, client, logger); err != nil {
			return fmt.Errorf("auto-start daemon: %w", err)
		}
	}

	result, err := client.Exchange(cmd.Context(), command, args, workDir, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	recordInvocation(cfg, command, args, workDir, result)

	if result.Err != nil && !cfg.Client.LegacySentinel {
		return fmt.Errorf("receive response for %q: %w", command, result.Err)
	}
	return exitWithCode(result.Legacy())
}

// recordInvocation appends to the history store. Failures are reported on
// stderr but never affect the command outcome.
func recordInvocation(cfg *config.Config, command string, args []string, workDir string, result ipc.Result) {
	if !cfg.History.Enabled {
		return
	}
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kiln: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	inv := history.Invocation{
		ID:            result.ID,
		Command:       command,
		Arguments:     args,
		Directory:     workDir,
		ExitCode:      result.Legacy(),
		ClientFailure: result.Err != nil,
		Duration:      result.Duration,
	}
	if err := store.Record(context.Background(), inv); err != nil {
		fmt.Fprintf(os.Stderr, "kiln: record history: %v\n", err)
	}
}
