package badgerdb

import (
	"bytes"
	"errors"

	"github.com/celer-network/go-ledger/db"
	"github.com/dgraph-io/badger/v2"
)

var errInvalidIterator = errors.New("invalid iterator")

type Iterator struct {
	start   []byte
	end     []byte
	reverse bool
	tx      *badger.Txn
	iter    *badger.Iterator
}

// Iterator walks keys from start towards end, exclusive. It runs in reverse when start
// sorts after end. The read transaction is released once the iterator is exhausted or
// closed.
func (db *DB) Iterator(start, end []byte) db.Iterator {
	badgerTx := db.db.NewTransaction(false)

	reverse := bytes.Compare(start, end) == 1

	opt := badger.DefaultIteratorOptions
	opt.PrefetchValues = false
	opt.Reverse = reverse

	badgerIter := badgerTx.NewIterator(opt)
	badgerIter.Seek(start)

	iter := &Iterator{
		start:   start,
		end:     end,
		reverse: reverse,
		tx:      badgerTx,
		iter:    badgerIter,
	}
	iter.releaseIfDone()
	return iter
}

func (iter *Iterator) Next() error {
	if !iter.Valid() {
		return errInvalidIterator
	}
	iter.iter.Next()
	iter.releaseIfDone()
	return nil
}

func (iter *Iterator) Valid() bool {
	if iter.iter == nil || !iter.iter.Valid() {
		return false
	}
	if iter.end != nil {
		key := iter.iter.Item().Key()
		if !iter.reverse && bytes.Compare(iter.end, key) <= 0 {
			return false
		}
		if iter.reverse && bytes.Compare(key, iter.end) <= 0 {
			return false
		}
	}
	return true
}

func (iter *Iterator) Key() ([]byte, error) {
	if !iter.Valid() {
		return nil, errInvalidIterator
	}
	return iter.iter.Item().KeyCopy(nil), nil
}

func (iter *Iterator) Value() ([]byte, error) {
	if !iter.Valid() {
		return nil, errInvalidIterator
	}
	return iter.iter.Item().ValueCopy(nil)
}

func (iter *Iterator) releaseIfDone() {
	if iter.iter != nil && !iter.Valid() {
		iter.Close()
	}
}

// Close releases the badger iterator and its read transaction.
func (iter *Iterator) Close() {
	if iter.iter == nil {
		return
	}
	iter.iter.Close()
	iter.tx.Discard()
	iter.iter = nil
}
