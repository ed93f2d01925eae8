package badgerdb

import (
	"github.com/celer-network/go-ledger/db"
	"github.com/dgraph-io/badger/v2"
)

// Bulk batches writes through a badger WriteBatch, which splits them into transactions
// as needed.
type Bulk struct {
	writeStats
	db   *DB
	bulk *badger.WriteBatch
}

func (bulk *Bulk) Set(namespace []byte, key []byte, value []byte) error {
	key = db.ConvNilToBytes(db.PrependNamespace(namespace, key))
	value = db.ConvNilToBytes(value)
	if err := bulk.bulk.Set(key, value); err != nil {
		return err
	}
	bulk.recordSet(key, value)
	return nil
}

func (bulk *Bulk) Delete(namespace []byte, key []byte) error {
	key = db.ConvNilToBytes(db.PrependNamespace(namespace, key))
	if err := bulk.bulk.Delete(key); err != nil {
		return err
	}
	bulk.recordDelete()
	return nil
}

func (bulk *Bulk) Flush() error {
	return bulk.timed(bulk.db, "flush", bulk.bulk.Flush)
}

func (bulk *Bulk) DiscardLast() {
	bulk.bulk.Cancel()
}
