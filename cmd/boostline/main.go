package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boostline-inc/boostline/internal/interfaces/cli/admin"
	"github.com/boostline-inc/boostline/internal/interfaces/cli/migrate"
	"github.com/boostline-inc/boostline/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boostline",
		Short: "Boostline subscription and payment service",
		Long:  `Boostline runs the subscription storefront: plan catalog, payment processing, refunds and the reconciliation jobs around them.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
