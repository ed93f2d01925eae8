package seed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/celer-network/go-ledger/log"
)

var (
	ErrEpochLengthMismatch = errors.New("checkpoint epoch length differs from genesis")
	ErrSlotNotInEpoch      = errors.New("slot is not in the current epoch")
)

// Store persists the latest State so a restarted node resumes where it stopped.
type Store interface {
	// LoadSeedState returns false when nothing has been saved yet.
	LoadSeedState() (*State, bool, error)
	SaveSeedState(s *State) error
}

// Driver is the only writer of the chain's seed state. It applies blocks one at a time and
// checkpoints each new state before making it visible.
type Driver struct {
	lock  sync.RWMutex
	state *State
	store Store
	log   *log.Logger
}

// NewDriver resumes from the stored checkpoint, or starts from genesis if there is none.
func NewDriver(genesis *State, store Store) (*Driver, error) {
	logger := log.NewLogger("seed")
	state, found, err := store.LoadSeedState()
	if err != nil {
		return nil, fmt.Errorf("load seed state: %w", err)
	}
	if found {
		if state.EpochLength() != genesis.EpochLength() {
			return nil, fmt.Errorf("checkpoint %d, genesis %d: %w",
				state.EpochLength(), genesis.EpochLength(), ErrEpochLengthMismatch)
		}
		logger.Info().Uint64("epoch", uint64(state.Epoch())).Msg("Resumed seed state from checkpoint")
	} else {
		state = genesis
		if err := store.SaveSeedState(state); err != nil {
			return nil, fmt.Errorf("save genesis seed state: %w", err)
		}
		logger.Info().Uint64("epochLength", state.EpochLength()).Msg("Initialized seed state from genesis")
	}
	return &Driver{state: state, store: store, log: logger}, nil
}

// State returns the latest applied state.
func (d *Driver) State() *State {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.state
}

// ProcessBlock applies the block at slot. The in-memory state is only replaced once the
// checkpoint is written.
func (d *Driver) ProcessBlock(slot Slot, blockNonce BlockNonce) (*State, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	next, err := d.state.UpdateForBlock(slot, blockNonce)
	if err != nil {
		return nil, err
	}
	if err := d.commit(next); err != nil {
		return nil, err
	}
	d.log.Debug().Uint64("slot", uint64(slot)).Uint64("epoch", uint64(next.Epoch())).
		Bool("contributed", next.Contributes(slot)).Msg("Processed block")
	return next, nil
}

// AdvanceEpoch crosses one epoch boundary without a block.
func (d *Driver) AdvanceEpoch() (*State, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	next := d.state.AdvanceEpoch()
	if err := d.commit(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (d *Driver) commit(next *State) error {
	if err := d.store.SaveSeedState(next); err != nil {
		return fmt.Errorf("save seed state: %w", err)
	}
	if next.Epoch() != d.state.Epoch() {
		d.log.Info().Uint64("from", uint64(d.state.Epoch())).Uint64("to", uint64(next.Epoch())).
			Str("nonce", next.CurrentLeadershipElectionNonce().String()).Msg("Entered new epoch")
	}
	d.state = next
	return nil
}

// LeadershipElectionNonce returns the election nonce for a slot of the current epoch. Other
// slots are refused since their nonce is either gone or not yet fixed.
func (d *Driver) LeadershipElectionNonce(slot Slot) (LeadershipElectionNonce, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if epoch := d.state.EpochOf(slot); epoch != d.state.Epoch() {
		return LeadershipElectionNonce{}, fmt.Errorf("slot %d in epoch %d, current epoch %d: %w",
			slot, epoch, d.state.Epoch(), ErrSlotNotInEpoch)
	}
	return d.state.CurrentLeadershipElectionNonce(), nil
}
