// Package commands implements the ledgerctl subcommands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/celer-network/go-ledger/config"
	"github.com/celer-network/go-ledger/log"
	"github.com/celer-network/go-ledger/storage"
)

const (
	flagConfig    = "config"
	flagLogConfig = "log-config"
)

// RootCommand loads the log and ledger configuration before any subcommand runs.
func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Inspect ledger payloads, transactions and seed state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := viper.BindPFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if path := viper.GetString(flagLogConfig); path != "" {
				if err := log.Configure(path); err != nil {
					return fmt.Errorf("log config: %w", err)
				}
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().String(flagConfig, "", "ledger config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String(flagLogConfig, "", "log config file (toml)")
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), viper.GetString(flagConfig))
}

// openStorage opens the configured database. The caller closes it.
func openStorage(cfg *config.Config) (*storage.Storage, error) {
	database, err := storage.OpenDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	return storage.NewStorage(database), nil
}

// decodeHexArg accepts hex with or without a 0x prefix.
func decodeHexArg(arg string) ([]byte, error) {
	if !strings.HasPrefix(arg, "0x") && !strings.HasPrefix(arg, "0X") {
		arg = "0x" + arg
	}
	data, err := hexutil.Decode(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

func printYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
