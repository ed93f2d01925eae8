// Package memorydb is a map-backed db.DB. Nothing survives Close; it backs tests and
// throwaway CLI runs.
package memorydb

import (
	"sync"

	ledgerdb "github.com/celer-network/go-ledger/db"
)

var _ ledgerdb.DB = (*DB)(nil)

type DB struct {
	lock sync.RWMutex
	db   map[string][]byte
}

func NewDB() *DB {
	return &DB{
		db: make(map[string][]byte),
	}
}

func (db *DB) Type() string {
	return "memorydb"
}

func fullKey(namespace []byte, key []byte) string {
	return string(ledgerdb.ConvNilToBytes(ledgerdb.PrependNamespace(namespace, key)))
}

// Stored values are copies, callers may reuse their buffers.
func (db *DB) Set(namespace []byte, key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.db[fullKey(namespace, key)] = append([]byte{}, value...)
	return nil
}

func (db *DB) Delete(namespace []byte, key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, fullKey(namespace, key))
	return nil
}

func (db *DB) Get(namespace []byte, key []byte) ([]byte, bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	value, exists := db.db[fullKey(namespace, key)]
	if !exists {
		return nil, false, nil
	}
	return append([]byte{}, value...), true, nil
}

func (db *DB) Exist(namespace []byte, key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	_, exists := db.db[fullKey(namespace, key)]
	return exists, nil
}

func (db *DB) Close() error {
	return nil
}

func (db *DB) NewTx() ledgerdb.Transaction {
	return &Transaction{batch{db: db}}
}

func (db *DB) NewBulk() ledgerdb.Bulk {
	return &Bulk{batch{db: db}}
}

// apply runs the staged writes under one lock so readers never see half of them.
func (db *DB) apply(ops []writeOp) {
	db.lock.Lock()
	defer db.lock.Unlock()
	for _, op := range ops {
		if op.delete {
			delete(db.db, op.key)
		} else {
			db.db[op.key] = op.value
		}
	}
}
