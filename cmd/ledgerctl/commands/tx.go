package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celer-network/go-ledger/statemachine"
	"github.com/celer-network/go-ledger/types"
)

type transactionOutput struct {
	Hash      string                   `yaml:"hash"`
	Signature string                   `yaml:"signature"`
	Header    *types.TransactionHeader `yaml:"header"`
	Type      string                   `yaml:"type"`
	Payload   types.Payload            `yaml:"payload"`
}

func decodeTransactionArg(arg string) (*types.Transaction, error) {
	data, err := decodeHexArg(arg)
	if err != nil {
		return nil, err
	}
	return types.DeserializeTransaction(data)
}

func TransactionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Decode and check signed transactions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode a transaction and its payload",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tx, err := decodeTransactionArg(args[0])
				if err != nil {
					return err
				}
				payload, err := tx.Payload.Decode()
				if err != nil {
					return err
				}
				hash := tx.Hash()
				return printYAML(cmd.OutOrStdout(), &transactionOutput{
					Hash:      fmt.Sprintf("%#x", hash[:]),
					Signature: fmt.Sprintf("%#x", tx.Signature[:]),
					Header:    tx.Header,
					Type:      payload.GetPayloadType().String(),
					Payload:   payload,
				})
			},
		},
		&cobra.Command{
			Use:   "check <hex>",
			Short: "Run the pre-execution checks against the stored sender account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tx, err := decodeTransactionArg(args[0])
				if err != nil {
					return err
				}
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				store, err := openStorage(cfg)
				if err != nil {
					return err
				}
				defer store.Close()

				// the checks never reach the executor
				sm := statemachine.NewStateMachine(store, nil, cfg.Execution)
				_, failure, err := sm.Check(tx)
				if err != nil {
					return err
				}
				if failure != nil {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", failure)
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return err
			},
		},
	)
	return cmd
}
