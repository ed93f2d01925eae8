package commands

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/celer-network/go-ledger/types"
)

type payloadOutput struct {
	Type    string        `yaml:"type"`
	Payload types.Payload `yaml:"payload"`
}

func PayloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Decode encoded transaction payloads",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode a payload and print it as yaml",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := decodeHexArg(args[0])
				if err != nil {
					return err
				}
				payload, err := types.DecodePayload(data)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), &payloadOutput{
					Type:    payload.GetPayloadType().String(),
					Payload: payload,
				})
			},
		},
		&cobra.Command{
			Use:   "body <hex>",
			Short: "Print the payload bytes following the type tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := decodeHexArg(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(types.PayloadBodyBytes(data)))
				return err
			},
		},
	)
	return cmd
}
