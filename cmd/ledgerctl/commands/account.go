package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celer-network/go-ledger/types"
)

const (
	flagAddress    = "address"
	flagBalance    = "balance"
	flagNextNonce  = "nonce"
	flagVerifyKey  = "key"
	flagCredential = "credential"
)

func decodeFixedFlag(cmd *cobra.Command, name string, dst []byte) error {
	arg, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	data, err := decodeHexArg(arg)
	if err != nil {
		return fmt.Errorf("--%s: %w", name, err)
	}
	if len(data) != len(dst) {
		return fmt.Errorf("--%s must be %d bytes, got %d", name, len(dst), len(data))
	}
	copy(dst, data)
	return nil
}

func AccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the sender accounts used by tx check",
	}
	cmd.AddCommand(accountSetCommand(), accountShowCommand())
	return cmd
}

func accountSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create an account or update the given fields of an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var address types.AccountAddress
			if err := decodeFixedFlag(cmd, flagAddress, address[:]); err != nil {
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

			info, found, err := store.GetAccount(address)
			if err != nil {
				return err
			}
			if !found {
				info = &types.AccountInfo{Address: address, HasValidCredential: true}
			}

			flags := cmd.Flags()
			if flags.Changed(flagBalance) {
				balance, err := flags.GetUint64(flagBalance)
				if err != nil {
					return err
				}
				info.Balance = types.Amount(balance)
			}
			if flags.Changed(flagNextNonce) {
				nonce, err := flags.GetUint64(flagNextNonce)
				if err != nil {
					return err
				}
				info.NextNonce = types.Nonce(nonce)
			}
			if flags.Changed(flagVerifyKey) {
				if err := decodeFixedFlag(cmd, flagVerifyKey, info.VerifyKey[:]); err != nil {
					return err
				}
			}
			if flags.Changed(flagCredential) {
				if info.HasValidCredential, err = flags.GetBool(flagCredential); err != nil {
					return err
				}
			}

			if err := store.SetAccount(info); err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().String(flagAddress, "", "32-byte account address in hex")
	cmd.Flags().Uint64(flagBalance, 0, "account balance")
	cmd.Flags().Uint64(flagNextNonce, 0, "next expected transaction nonce")
	cmd.Flags().String(flagVerifyKey, "", "32-byte ed25519 verify key in hex")
	cmd.Flags().Bool(flagCredential, true, "whether the account holds a valid credential")
	return cmd
}

func accountShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var address types.AccountAddress
			if err := decodeFixedFlag(cmd, flagAddress, address[:]); err != nil {
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

			info, found, err := store.GetAccount(address)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("account %s not found", address)
			}
			return printYAML(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().String(flagAddress, "", "32-byte account address in hex")
	return cmd
}
