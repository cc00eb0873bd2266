package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/solacehq/solace/internal/interfaces/cli/migrate"
	"github.com/solacehq/solace/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solace",
		Short: "Solace - subscription billing core",
		Long:  `Solace ingests store and processor webhooks, reconciles subscription state, and serves entitlement lookups.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
