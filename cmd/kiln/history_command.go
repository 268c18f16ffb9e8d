package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"kiln/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent daemon invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (set history.enabled = true)")
				return nil
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No invocations recorded yet")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

// renderHistoryTable lays out invocations newest-first, with the numeric
// exit and duration columns right-aligned.
func renderHistoryTable(entries []history.Invocation) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"When", "Command", "Arguments", "Directory", "Exit", "Duration"})
	for _, inv := range entries {
		tw.AppendRow(table.Row{
			inv.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			inv.Command,
			formatArguments(inv.Arguments),
			inv.Directory,
			formatExit(inv),
			formatDuration(inv.Duration),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func formatArguments(args []string) string {
	const maxWidth = 48
	joined := strings.Join(args, " ")
	if len(joined) > maxWidth {
		return joined[:maxWidth-3] + "..."
	}
	return joined
}

func formatExit(inv history.Invocation) string {
	if inv.ClientFailure {
		return strconv.Itoa(inv.ExitCode) + "!"
	}
	return strconv.Itoa(inv.ExitCode)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
