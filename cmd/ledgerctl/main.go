package main

import (
	"github.com/spf13/cobra"

	"github.com/celer-network/go-ledger/cmd/ledgerctl/commands"
	"github.com/celer-network/go-ledger/log"
)

func main() {
	cobra.EnableCommandSorting = false

	rootCmd := commands.RootCommand()
	rootCmd.AddCommand(
		commands.PayloadCommand(),
		commands.TransactionCommand(),
		commands.SeedCommand(),
		commands.AccountCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		log.Default().Fatal().Err(err).Send()
	}
}
