package memorydb

import (
	"errors"
	"sync"
)

var (
	ErrDiscarded = errors.New("commit after discard")
	ErrCommitted = errors.New("already committed")
)

type writeOp struct {
	key    string
	value  []byte
	delete bool
}

// batch stages writes until they are applied to the DB in one step.
type batch struct {
	lock      sync.Mutex
	db        *DB
	ops       []writeOp
	discarded bool
	committed bool
}

func (b *batch) set(namespace []byte, key []byte, value []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.ops = append(b.ops, writeOp{key: fullKey(namespace, key), value: append([]byte{}, value...)})
	return nil
}

func (b *batch) delete(namespace []byte, key []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.ops = append(b.ops, writeOp{key: fullKey(namespace, key), delete: true})
	return nil
}

func (b *batch) commit() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.discarded {
		return ErrDiscarded
	}
	if b.committed {
		return ErrCommitted
	}
	b.db.apply(b.ops)
	b.ops = nil
	b.committed = true
	return nil
}

func (b *batch) discard() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.ops = nil
	b.discarded = true
}

// Transaction applies all of its writes at Commit, or none of them.
type Transaction struct {
	batch
}

func (tx *Transaction) Set(namespace []byte, key []byte, value []byte) error {
	return tx.set(namespace, key, value)
}

func (tx *Transaction) Delete(namespace []byte, key []byte) error {
	return tx.delete(namespace, key)
}

func (tx *Transaction) Commit() error {
	return tx.commit()
}

func (tx *Transaction) Discard() {
	tx.discard()
}
