// Package seed tracks the leadership election nonce of each epoch.
//
// The nonce used for leader election in an epoch is fixed when the epoch begins. While the
// epoch runs, the nonces of blocks in its first two thirds of slots are folded into an
// updated nonce, which becomes the election nonce of the next epoch. Blocks in the last
// third arrive too late to influence it.
package seed

import (
	"errors"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/utils"
)

const (
	NonceSize = utils.HashLength
	// MaxEpochLength keeps 3*(slot mod epochLength) within uint64.
	MaxEpochLength = math.MaxUint64 / 3
	// StateSize is the length of a serialized State.
	StateSize = 8 + 8 + NonceSize + NonceSize
)

var (
	ErrZeroEpochLength     = errors.New("epoch length must be positive")
	ErrEpochLengthTooLarge = errors.New("epoch length too large")
	ErrSlotBeforeEpoch     = errors.New("slot belongs to an earlier epoch")
)

type Slot uint64

type Epoch uint64

// LeadershipElectionNonce is the seed of leader election for one epoch.
type LeadershipElectionNonce [NonceSize]byte

// BlockNonce is the hash output of a block's VRF proof.
type BlockNonce [NonceSize]byte

func (n LeadershipElectionNonce) String() string { return hexutil.Encode(n[:]) }
func (n BlockNonce) String() string              { return hexutil.Encode(n[:]) }

func (n LeadershipElectionNonce) MarshalText() ([]byte, error) {
	return hexutil.Bytes(n[:]).MarshalText()
}

// State is immutable. Every update returns a new value, so a State can be shared freely;
// ordering of updates is the caller's responsibility.
type State struct {
	epochLength                    uint64
	epoch                          Epoch
	currentLeadershipElectionNonce LeadershipElectionNonce
	updatedNonce                   LeadershipElectionNonce
}

// InitialState is the genesis state: epoch 0 with both nonces set to nonce.
func InitialState(nonce LeadershipElectionNonce, epochLength uint64) (*State, error) {
	if err := validateEpochLength(epochLength); err != nil {
		return nil, err
	}
	return &State{
		epochLength:                    epochLength,
		epoch:                          0,
		currentLeadershipElectionNonce: nonce,
		updatedNonce:                   nonce,
	}, nil
}

func validateEpochLength(epochLength uint64) error {
	if epochLength == 0 {
		return ErrZeroEpochLength
	}
	if epochLength > MaxEpochLength {
		return fmt.Errorf("%d: %w", epochLength, ErrEpochLengthTooLarge)
	}
	return nil
}

func (s *State) EpochLength() uint64 { return s.epochLength }
func (s *State) Epoch() Epoch        { return s.epoch }

func (s *State) CurrentLeadershipElectionNonce() LeadershipElectionNonce {
	return s.currentLeadershipElectionNonce
}

func (s *State) UpdatedNonce() LeadershipElectionNonce { return s.updatedNonce }

// EpochOf returns the epoch the slot falls in.
func (s *State) EpochOf(slot Slot) Epoch {
	return Epoch(uint64(slot) / s.epochLength)
}

// Contributes reports whether a block at slot lies in the first two thirds of its epoch.
func (s *State) Contributes(slot Slot) bool {
	return 3*(uint64(slot)%s.epochLength) < 2*s.epochLength
}

// AdvanceEpoch adopts the accumulated nonce for the next epoch and restarts accumulation
// from it.
func (s *State) AdvanceEpoch() *State {
	return s.rotateTo(s.epoch + 1)
}

// rotateTo moves to a later epoch. Rotating twice with no blocks in between leaves both
// nonces unchanged, so skipping several empty epochs needs only one rotation.
func (s *State) rotateTo(epoch Epoch) *State {
	next := *s
	next.epoch = epoch
	next.currentLeadershipElectionNonce = s.updatedNonce
	next.updatedNonce = s.updatedNonce
	return &next
}

// UpdateForBlock applies a block at slot with the given nonce. Epoch boundaries between the
// state's epoch and the slot's are crossed first; the block nonce is then mixed into the
// updated nonce if the slot is early enough in its epoch. Blocks must be applied in chain
// order.
func (s *State) UpdateForBlock(slot Slot, blockNonce BlockNonce) (*State, error) {
	slotEpoch := s.EpochOf(slot)
	if slotEpoch < s.epoch {
		return nil, fmt.Errorf("slot %d in epoch %d, state at epoch %d: %w", slot, slotEpoch, s.epoch, ErrSlotBeforeEpoch)
	}
	next := s
	if slotEpoch > s.epoch {
		next = s.rotateTo(slotEpoch)
	}
	if !next.Contributes(slot) {
		return next, nil
	}
	mixed := *next
	mixed.updatedNonce = CombineNonce(next.updatedNonce, blockNonce)
	return &mixed, nil
}

// CombineNonce is SHA-256 over the accumulated nonce followed by the block nonce.
func CombineNonce(acc LeadershipElectionNonce, blockNonce BlockNonce) LeadershipElectionNonce {
	var out LeadershipElectionNonce
	copy(out[:], utils.Hasher(acc[:], blockNonce[:]))
	return out
}

func (s *State) Serialize(w *serialization.Writer) {
	w.PutUint64(s.epochLength)
	w.PutUint64(uint64(s.epoch))
	w.PutFixed(s.currentLeadershipElectionNonce[:])
	w.PutFixed(s.updatedNonce[:])
}

func (s *State) Bytes() []byte {
	w := serialization.NewWriter()
	s.Serialize(w)
	return w.Bytes()
}

func DeserializeState(r *serialization.Reader) (*State, error) {
	var s State
	var err error
	if s.epochLength, err = r.GetUint64(); err != nil {
		return nil, fmt.Errorf("epoch length: %w", err)
	}
	if err = validateEpochLength(s.epochLength); err != nil {
		return nil, err
	}
	epoch, err := r.GetUint64()
	if err != nil {
		return nil, fmt.Errorf("epoch: %w", err)
	}
	s.epoch = Epoch(epoch)
	if err = r.GetFixed(s.currentLeadershipElectionNonce[:]); err != nil {
		return nil, fmt.Errorf("current nonce: %w", err)
	}
	if err = r.GetFixed(s.updatedNonce[:]); err != nil {
		return nil, fmt.Errorf("updated nonce: %w", err)
	}
	return &s, nil
}

// DecodeState decodes a checkpoint written by Bytes.
func DecodeState(data []byte) (*State, error) {
	r := serialization.NewReader(data)
	s, err := DeserializeState(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) String() string {
	return fmt.Sprintf("SeedState{epochLength: %d, epoch: %d, current: %s, updated: %s}",
		s.epochLength, s.epoch, s.currentLeadershipElectionNonce, s.updatedNonce)
}
