package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kiln/internal/daemonctl"
	"kiln/internal/history"
)

func runStatus(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	client, err := ctx.client()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)

	fmt.Fprintln(stdout, sectionHeader("Daemon", colorize))
	if client.ServerAvailable(cmd.Context()) {
		fmt.Fprintln(stdout, statusLine("Daemon", statusOK, "Running", colorize))
	} else {
		fmt.Fprintln(stdout, statusLine("Daemon", statusWarn, "Not running (run `kiln start`)", colorize))
	}
	fmt.Fprintln(stdout, statusLine("Endpoint", statusInfo, cfg.Address(), colorize))
	fmt.Fprintln(stdout, statusLine("Auto-start", statusInfo, yesNo(cfg.Daemon.AutoStart), colorize))
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, sectionHeader("Runtime", colorize))
	if javaPath, javaErr := daemonctl.ResolveJava(cfg); javaErr == nil {
		fmt.Fprintln(stdout, statusLine("Java", statusOK, javaPath, colorize))
	} else {
		fmt.Fprintln(stdout, statusLine("Java", statusError, javaErr.Error(), colorize))
	}
	switch jar := strings.TrimSpace(cfg.Daemon.Jar); {
	case jar == "":
		fmt.Fprintln(stdout, statusLine("Daemon jar", statusWarn, "Not configured", colorize))
	default:
		if _, statErr := os.Stat(jar); statErr != nil {
			fmt.Fprintln(stdout, statusLine("Daemon jar", statusError, fmt.Sprintf("%s (missing)", jar), colorize))
		} else {
			fmt.Fprintln(stdout, statusLine("Daemon jar", statusOK, jar, colorize))
		}
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, sectionHeader("Client", colorize))
	fmt.Fprintln(stdout, statusLine("Arg policy", statusInfo, cfg.Client.ArgumentPolicy, colorize))
	fmt.Fprintln(stdout, statusLine("Legacy exit", statusInfo, yesNo(cfg.Client.LegacySentinel), colorize))
	if cfg.History.Enabled {
		fmt.Fprintln(stdout, statusLine("History", statusOK, historyDetail(ctx), colorize))
	} else {
		fmt.Fprintln(stdout, statusLine("History", statusInfo, "Disabled", colorize))
	}
	return nil
}

func historyDetail(ctx *commandContext) string {
	cfg := ctx.configValue()
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Sprintf("Unavailable (%v)", err)
	}
	defer store.Close()
	count, err := store.Count(context.Background())
	if err != nil {
		return fmt.Sprintf("Unavailable (%v)", err)
	}
	return fmt.Sprintf("%d recorded invocations", count)
}
