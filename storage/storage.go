// Package storage keeps the seed state checkpoint and the election nonce of every epoch
// on top of a db.DB.
package storage

import (
	"fmt"

	"github.com/celer-network/go-ledger/config"
	"github.com/celer-network/go-ledger/db"
	"github.com/celer-network/go-ledger/db/badgerdb"
	"github.com/celer-network/go-ledger/db/memorydb"
	"github.com/celer-network/go-ledger/seed"
	"github.com/celer-network/go-ledger/serialization"
)

var checkpointKey = []byte("latest")

var _ seed.Store = (*Storage)(nil)

type Storage struct {
	db db.DB
}

func NewStorage(db db.DB) *Storage {
	return &Storage{
		db: db,
	}
}

// OpenDB opens the backend named by the config.
func OpenDB(cfg config.DBConfig) (db.DB, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memorydb.NewDB(), nil
	case config.BackendBadger:
		database, err := badgerdb.NewDB(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open badger db %s: %w", cfg.Dir, err)
		}
		return database, nil
	}
	return nil, fmt.Errorf("%q: %w", cfg.Backend, config.ErrInvalidBackend)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) LoadSeedState() (*seed.State, bool, error) {
	data, found, err := s.db.Get(db.NamespaceSeedState, checkpointKey)
	if err != nil || !found {
		return nil, false, err
	}
	state, err := seed.DecodeState(data)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt seed state checkpoint: %w", err)
	}
	return state, true, nil
}

// maxBackfillEpochs bounds how many skipped epochs one save records.
const maxBackfillEpochs = 4096

// SaveSeedState writes the checkpoint and records the state's election nonce in one
// transaction. When the state jumped several epochs past the stored checkpoint, every
// skipped epoch ran on that same nonce and is recorded too, up to the last
// maxBackfillEpochs of the gap.
func (s *Storage) SaveSeedState(state *seed.State) error {
	from := state.Epoch()
	prev, found, err := s.LoadSeedState()
	if err != nil {
		return err
	}
	if found && prev.Epoch() < state.Epoch() {
		from = prev.Epoch() + 1
		if state.Epoch()-from >= maxBackfillEpochs {
			from = state.Epoch() - maxBackfillEpochs + 1
		}
	}

	tx := s.db.NewTx()
	if err := tx.Set(db.NamespaceSeedState, checkpointKey, state.Bytes()); err != nil {
		tx.Discard()
		return err
	}
	nonce := state.CurrentLeadershipElectionNonce()
	for epoch := from; ; epoch++ {
		if err := tx.Set(db.NamespaceEpochNonce, epochKey(epoch), nonce[:]); err != nil {
			tx.Discard()
			return err
		}
		if epoch == state.Epoch() {
			break
		}
	}
	return tx.Commit()
}

// EpochNonce returns the election nonce that was used in epoch.
func (s *Storage) EpochNonce(epoch seed.Epoch) (seed.LeadershipElectionNonce, bool, error) {
	var nonce seed.LeadershipElectionNonce
	data, found, err := s.db.Get(db.NamespaceEpochNonce, epochKey(epoch))
	if err != nil || !found {
		return nonce, false, err
	}
	if len(data) != len(nonce) {
		return nonce, false, fmt.Errorf("epoch %d nonce has %d bytes", epoch, len(data))
	}
	copy(nonce[:], data)
	return nonce, true, nil
}

type EpochNonce struct {
	Epoch seed.Epoch
	Nonce seed.LeadershipElectionNonce
}

// EpochNonces lists the recorded election nonces in ascending epoch order.
func (s *Storage) EpochNonces() ([]EpochNonce, error) {
	start, end := db.NamespaceRange(db.NamespaceEpochNonce)
	iter := s.db.Iterator(start, end)
	defer iter.Close()

	var out []EpochNonce
	for iter.Valid() {
		key, err := iter.Key()
		if err != nil {
			return nil, err
		}
		value, err := iter.Value()
		if err != nil {
			return nil, err
		}
		epoch, err := parseEpochKey(db.StripNamespace(db.NamespaceEpochNonce, key))
		if err != nil {
			return nil, err
		}
		entry := EpochNonce{Epoch: epoch}
		copy(entry.Nonce[:], value)
		out = append(out, entry)
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// PruneEpochNonces deletes the recorded nonces of all epochs before the given one and
// returns how many were removed.
func (s *Storage) PruneEpochNonces(before seed.Epoch) (int, error) {
	entries, err := s.EpochNonces()
	if err != nil {
		return 0, err
	}
	bulk := s.db.NewBulk()
	pruned := 0
	for _, e := range entries {
		if e.Epoch >= before {
			break
		}
		if err := bulk.Delete(db.NamespaceEpochNonce, epochKey(e.Epoch)); err != nil {
			bulk.DiscardLast()
			return 0, err
		}
		pruned++
	}
	if err := bulk.Flush(); err != nil {
		return 0, err
	}
	return pruned, nil
}

// epochKey is big-endian so that keys sort by epoch.
func epochKey(epoch seed.Epoch) []byte {
	w := serialization.NewWriter()
	w.PutUint64(uint64(epoch))
	return w.Bytes()
}

func parseEpochKey(key []byte) (seed.Epoch, error) {
	r := serialization.NewReader(key)
	epoch, err := r.GetUint64()
	if err != nil {
		return 0, err
	}
	if err := r.Finish(); err != nil {
		return 0, err
	}
	return seed.Epoch(epoch), nil
}
