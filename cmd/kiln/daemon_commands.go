package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kiln/internal/daemonctl"
)

const stopGracePeriod = 10 * time.Second

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the compile daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(cmd.Context(), cfg, client, ctx.ensureLogger())
			if err != nil {
				return err
			}
			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintf(stdout, "Daemon started on %s\n", cfg.Address())
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintf(stdout, "Daemon already running on %s\n", cfg.Address())
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the compile daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			client, err := ctx.client()
			if err != nil {
				return err
			}

			_, err = daemonctl.StopAndWait(cmd.Context(), client, stopGracePeriod)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the compile daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			result, err := daemonctl.Restart(cmd.Context(), cfg, client, ctx.ensureLogger(), stopGracePeriod)
			if err != nil {
				return err
			}
			if result.WasRunning {
				fmt.Fprintln(stdout, "Daemon stopped")
			}
			fmt.Fprintf(stdout, "Daemon started on %s\n", cfg.Address())
			return nil
		},
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Check whether the daemon answers a status probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if client.ServerAvailable(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "Daemon at %s is available\n", cfg.Address())
				return nil
			}
			return fmt.Errorf("daemon at %s is not available", cfg.Address())
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and configuration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(ctx, cmd)
		},
	}

	return []*cobra.Command{startCmd, stopCmd, restartCmd, pingCmd, statusCmd}
}
