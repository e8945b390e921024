package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "trctl",
		Short:         "Control a Transmission daemon over RPC",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&flags.url, "url", "", "Daemon RPC URL (default localhost:9091)")
	pf.StringVar(&flags.username, "username", "", "RPC username")
	pf.StringVar(&flags.password, "password", "", "RPC password")
	pf.BoolVar(&flags.debug, "debug", false, "Log every RPC attempt")
	pf.BoolVar(&flags.json, "json", false, "Print raw results as JSON")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	for _, cmd := range newActionCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newMoveCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newSessionCommand(ctx))
	rootCmd.AddCommand(newFreeSpaceCommand(ctx))
	rootCmd.AddCommand(newPortTestCommand(ctx))
	rootCmd.AddCommand(newBlocklistUpdateCommand(ctx))

	return rootCmd
}
