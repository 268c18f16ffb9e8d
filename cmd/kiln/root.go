package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var hostFlag string
	var portFlag int

	ctx := newCommandContext(&configFlag, &hostFlag, &portFlag)

	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Client for the kilnd compile daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Daemon host override")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Daemon port override")

	rootCmd.AddCommand(newCompileCommand(ctx))
	rootCmd.AddCommand(newExecCommand(ctx))
	for _, cmd := range newDaemonCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
