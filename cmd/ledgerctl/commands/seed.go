package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celer-network/go-ledger/seed"
	"github.com/celer-network/go-ledger/storage"
)

const (
	flagEpoch      = "epoch"
	flagSlot       = "slot"
	flagBlockNonce = "block-nonce"
	flagBefore     = "before"
)

var errNoSeedState = errors.New("no seed state stored, run seed init first")

type seedOutput struct {
	EpochLength                    uint64                       `yaml:"epoch_length"`
	Epoch                          seed.Epoch                   `yaml:"epoch"`
	CurrentLeadershipElectionNonce seed.LeadershipElectionNonce `yaml:"current_leadership_election_nonce"`
	UpdatedNonce                   seed.LeadershipElectionNonce `yaml:"updated_nonce"`
}

func newSeedOutput(s *seed.State) *seedOutput {
	return &seedOutput{
		EpochLength:                    s.EpochLength(),
		Epoch:                          s.Epoch(),
		CurrentLeadershipElectionNonce: s.CurrentLeadershipElectionNonce(),
		UpdatedNonce:                   s.UpdatedNonce(),
	}
}

// openDriver opens storage and resumes the seed state from it, starting from the
// configured genesis when nothing is stored yet.
func openDriver() (*seed.Driver, *storage.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	genesis, err := cfg.Genesis.State()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	driver, err := seed.NewDriver(genesis, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return driver, store, nil
}

func SeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Maintain the leadership election seed state",
	}
	cmd.AddCommand(
		seedInitCommand(),
		seedShowCommand(),
		seedAdvanceCommand(),
		seedHistoryCommand(),
		seedPruneCommand(),
	)
	return cmd
}

func seedInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Store the genesis seed state unless a checkpoint exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, store, err := openDriver()
			if err != nil {
				return err
			}
			defer store.Close()
			return printYAML(cmd.OutOrStdout(), newSeedOutput(driver.State()))
		},
	}
}

func seedShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the checkpointed seed state, or the nonce of one epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if cmd.Flags().Changed(flagEpoch) {
				epoch, err := cmd.Flags().GetUint64(flagEpoch)
				if err != nil {
					return err
				}
				nonce, found, err := store.EpochNonce(seed.Epoch(epoch))
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no nonce recorded for epoch %d", epoch)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), nonce)
				return err
			}

			state, found, err := store.LoadSeedState()
			if err != nil {
				return err
			}
			if !found {
				return errNoSeedState
			}
			return printYAML(cmd.OutOrStdout(), newSeedOutput(state))
		},
	}
	cmd.Flags().Uint64(flagEpoch, 0, "print the election nonce recorded for this epoch")
	return cmd
}

func seedAdvanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Apply a block, or cross to the next epoch when no slot is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, store, err := openDriver()
			if err != nil {
				return err
			}
			defer store.Close()

			var state *seed.State
			if cmd.Flags().Changed(flagSlot) {
				slot, err := cmd.Flags().GetUint64(flagSlot)
				if err != nil {
					return err
				}
				arg, err := cmd.Flags().GetString(flagBlockNonce)
				if err != nil {
					return err
				}
				var blockNonce seed.BlockNonce
				data, err := decodeHexArg(arg)
				if err != nil {
					return err
				}
				if len(data) != len(blockNonce) {
					return fmt.Errorf("block nonce must be %d bytes, got %d", len(blockNonce), len(data))
				}
				copy(blockNonce[:], data)
				state, err = driver.ProcessBlock(seed.Slot(slot), blockNonce)
				if err != nil {
					return err
				}
			} else {
				state, err = driver.AdvanceEpoch()
				if err != nil {
					return err
				}
			}
			return printYAML(cmd.OutOrStdout(), newSeedOutput(state))
		},
	}
	cmd.Flags().Uint64(flagSlot, 0, "slot of the block to apply")
	cmd.Flags().String(flagBlockNonce, "", "32-byte block nonce in hex")
	return cmd
}

type epochNonceOutput struct {
	Epoch seed.Epoch                   `yaml:"epoch"`
	Nonce seed.LeadershipElectionNonce `yaml:"nonce"`
}

func seedHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the recorded election nonce of every epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.EpochNonces()
			if err != nil {
				return err
			}
			out := make([]epochNonceOutput, 0, len(entries))
			for _, e := range entries {
				out = append(out, epochNonceOutput{Epoch: e.Epoch, Nonce: e.Nonce})
			}
			return printYAML(cmd.OutOrStdout(), out)
		},
	}
}

func seedPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete the recorded nonces of epochs before --before",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed(flagBefore) {
				return fmt.Errorf("--%s is required", flagBefore)
			}
			before, err := cmd.Flags().GetUint64(flagBefore)
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

			pruned, err := store.PruneEpochNonces(seed.Epoch(before))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d epochs\n", pruned)
			return err
		},
	}
	cmd.Flags().Uint64(flagBefore, 0, "first epoch to keep")
	return cmd
}
