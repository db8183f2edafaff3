package main

import (
	"fmt"
	"os"

	"yatube/internal/config"

	"github.com/spf13/cobra"
)

// settings is loaded once before any subcommand runs.
var settings *config.Settings

func main() {
	rootCmd := &cobra.Command{
		Use:           "yatube",
		Short:         "Yatube blogging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			settings = config.Load()
			config.InitLogger(settings.Env)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = config.Logger.Sync()
		},
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		GroupsCmd(),
		SeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
