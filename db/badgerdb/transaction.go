package badgerdb

import (
	"github.com/celer-network/go-ledger/db"
	"github.com/dgraph-io/badger/v2"
)

// Transaction wraps a read-write badger transaction. It fails at Commit with
// badger.ErrConflict if a key it read was changed meanwhile, and with
// badger.ErrTxnTooBig as soon as it outgrows one transaction.
type Transaction struct {
	writeStats
	db *DB
	tx *badger.Txn
}

func (transaction *Transaction) Set(namespace []byte, key []byte, value []byte) error {
	key = db.ConvNilToBytes(db.PrependNamespace(namespace, key))
	value = db.ConvNilToBytes(value)
	if err := transaction.tx.Set(key, value); err != nil {
		return err
	}
	transaction.recordSet(key, value)
	return nil
}

func (transaction *Transaction) Delete(namespace []byte, key []byte) error {
	key = db.ConvNilToBytes(db.PrependNamespace(namespace, key))
	if err := transaction.tx.Delete(key); err != nil {
		return err
	}
	transaction.recordDelete()
	return nil
}

func (transaction *Transaction) Commit() error {
	return transaction.timed(transaction.db, "commit", transaction.tx.Commit)
}

func (transaction *Transaction) Discard() {
	transaction.tx.Discard()
}
